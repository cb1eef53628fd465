package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/xvierd/fokus/internal/domain"
)

func TestHistoryCmd_Empty(t *testing.T) {
	env := newEnv(t)

	stdout, _, err := env.run(t, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(stdout, emptyHistoryNotice) {
		t.Errorf("stdout = %q, want the empty notice", stdout)
	}
}

func TestHistoryCmd_Table(t *testing.T) {
	env := newEnv(t)
	env.seed(t, domain.History{
		"2024-01-01": 10,
		"2024-03-01": 30,
		"not-a-date": 5,
		"2024-02-01": 20,
	})

	stdout, _, err := env.run(t, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}

	order := []string{"2024-03-01", "2024-02-01", "2024-01-01", "not-a-date"}
	last := -1
	for _, day := range order {
		idx := strings.Index(stdout, day)
		if idx < 0 {
			t.Fatalf("output missing %s:\n%s", day, stdout)
		}
		if idx < last {
			t.Errorf("%s printed out of order:\n%s", day, stdout)
		}
		last = idx
	}
	if !strings.Contains(stdout, "Total: 65 minutes over 4 day(s)") {
		t.Errorf("missing total line:\n%s", stdout)
	}
}

func TestHistoryCmd_Match(t *testing.T) {
	env := newEnv(t)
	env.seed(t, domain.History{
		"2024-03-01": 30,
		"2024-03-15": 15,
		"2024-02-01": 20,
	})

	stdout, _, err := env.run(t, "history", "--match", "2024-03")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if strings.Contains(stdout, "2024-02-01") {
		t.Errorf("February should be filtered out:\n%s", stdout)
	}
	if !strings.Contains(stdout, "2024-03-15") || !strings.Contains(stdout, "2024-03-01") {
		t.Errorf("March days missing:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Total: 45 minutes over 2 day(s)") {
		t.Errorf("missing total line:\n%s", stdout)
	}
}

func TestHistoryCmd_Chart(t *testing.T) {
	env := newEnv(t)
	env.seed(t, domain.History{
		domain.DayKey(time.Now()): 25,
	})

	stdout, _, err := env.run(t, "history", "--chart", "--days", "3")
	if err != nil {
		t.Fatalf("history --chart failed: %v", err)
	}
	if !strings.Contains(stdout, "Last 3 day(s): 25 minutes") {
		t.Errorf("missing chart summary:\n%s", stdout)
	}
}

func TestHistoryCmd_ChartDaysOutOfRange(t *testing.T) {
	env := newEnv(t)

	for _, days := range []string{"0", "367"} {
		if _, _, err := env.run(t, "history", "--chart", "--days", days); err == nil {
			t.Errorf("--days %s should be rejected", days)
		}
	}
}

func TestHistoryCmd_SQLiteBackend(t *testing.T) {
	env := newEnv(t)

	stdout, _, err := env.run(t, "--backend", "sqlite", "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(stdout, emptyHistoryNotice) {
		t.Errorf("stdout = %q, want the empty notice", stdout)
	}
}
