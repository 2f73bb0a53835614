package main

import (
	"github.com/spf13/cobra"
)

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the program walkthrough",
	Args:  cobra.NoArgs,
	RunE:  runGuide,
}

const guideText = `새싹 키움 사용 안내

1. 식물 식별
   planterm identify <이미지>
   사진을 올리면 AI가 종을 식별하고 관리 가이드와 성장 단계를
   저장합니다. 결과는 로컬에 보관되어 다음 단계에서 재사용됩니다.

2. 관리 가이드
   planterm care
   마지막으로 식별한 식물의 물주기·햇빛·온도·습도·비료·토양 정보를
   보여줍니다. --export <파일>로 전체 리포트를 저장할 수 있습니다.

3. 성장 예측
   planterm growth [이미지]
   기간별 예상 키를 표로 보여줍니다. --chart를 붙이면 좋은/나쁜
   조건의 변화를 차트로 볼 수 있습니다. 백엔드가 데이터를 주지
   못하면 데모용 합성 데이터가 표시됩니다.

4. 급수 스케줄
   planterm schedule add --date 2026-08-28 --water 2 --weather 맑음
   planterm schedule list / edit / rm / export
   급수와 날씨를 기록하고 CSV로 내보냅니다. 스케줄은 서버 없이
   로컬에만 저장됩니다.

5. 병충해 진단
   planterm disease <잎 사진>
   잎 사진으로 건강 상태를 진단하고 증상·원인·해결 방법을
   알려줍니다.

전체 화면 UI는 planterm tui로 실행합니다. 백엔드 연결 확인은
planterm health를 사용하세요.`

func runGuide(cmd *cobra.Command, args []string) error {
	cmd.Println(guideText)
	return nil
}
