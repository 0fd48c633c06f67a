package quiz

import "testing"

func TestCalculateQuizXP(t *testing.T) {
	tests := []struct {
		name  string
		score int
		total int
		want  int
	}{
		{"zero questions", 0, 0, 0},
		{"perfect score", 10, 10, 100},
		{"ninety percent exactly", 9, 10, 100},
		{"just under ninety", 8999, 10000, 75},
		{"eighty percent", 8, 10, 75},
		{"seventy percent", 7, 10, 50},
		{"sixty percent exactly", 6, 10, 25},
		{"just under sixty", 5999, 10000, 10},
		{"zero score", 0, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateQuizXP(tt.score, tt.total); got != tt.want {
				t.Fatalf("CalculateQuizXP(%d, %d) = %d, want %d", tt.score, tt.total, got, tt.want)
			}
		})
	}
}

func TestCalculateQuizXPOnlyEmitsTierValues(t *testing.T) {
	valid := map[int]bool{10: true, 25: true, 50: true, 75: true, 100: true}

	for score := 0; score <= 20; score++ {
		got := CalculateQuizXP(score, 20)
		if !valid[got] {
			t.Fatalf("CalculateQuizXP(%d, 20) = %d, not a tier value", score, got)
		}
	}
}

func TestCalculateQuizXPMonotonic(t *testing.T) {
	prev := 0
	for score := 0; score <= 100; score++ {
		got := CalculateQuizXP(score, 100)
		if got < prev {
			t.Fatalf("XP decreased from %d to %d at score %d", prev, got, score)
		}
		prev = got
	}
}
