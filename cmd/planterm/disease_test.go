package main

import (
	"strings"
	"testing"

	"github.com/saessak-labs/planterm/internal/api"
)

func TestDiseaseStatusLine(t *testing.T) {
	tests := []struct {
		name    string
		resp    *api.DiseaseResponse
		want    string
		notWant string
	}{
		{
			name: "diseased percent scale rendered as-is",
			resp: &api.DiseaseResponse{
				Status:     api.DiseaseStatusDisease,
				Confidence: 87.3,
			},
			want:    "87.3%",
			notWant: "8730",
		},
		{
			name: "healthy percent scale rendered as-is",
			resp: &api.DiseaseResponse{
				Status:     api.DiseaseStatusHealthy,
				Confidence: 95.8,
			},
			want:    "95.8%",
			notWant: "9580",
		},
		{
			name: "healthy verdict text",
			resp: &api.DiseaseResponse{Status: api.DiseaseStatusHealthy, Confidence: 95.8},
			want: "건강한 상태입니다",
		},
		{
			name: "diseased verdict text",
			resp: &api.DiseaseResponse{Status: api.DiseaseStatusDisease, Confidence: 87.3},
			want: "병충해 의심",
		},
		{
			name: "unknown status falls through",
			resp: &api.DiseaseResponse{Status: "inconclusive"},
			want: "상태: inconclusive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diseaseStatusLine(tt.resp)
			if !strings.Contains(got, tt.want) {
				t.Errorf("diseaseStatusLine() = %q, want it to contain %q", got, tt.want)
			}
			if tt.notWant != "" && strings.Contains(got, tt.notWant) {
				t.Errorf("diseaseStatusLine() = %q, must not contain %q", got, tt.notWant)
			}
		})
	}
}
