package cronjobs

import (
	"context"
	"errors"
	"testing"

	"go-healthai/llm"
)

type probeModel struct {
	name  string
	reply string
	err   error
}

func (m probeModel) Name() string { return m.name }

func (m probeModel) Generate(ctx context.Context, p llm.Prompt) (string, error) {
	if p.Message != probeMessage {
		return "", errors.New("unexpected probe prompt")
	}
	return m.reply, m.err
}

func TestModelProbeRecordsStatus(t *testing.T) {
	t.Parallel()

	probe := NewModelProbe([]llm.Model{
		probeModel{name: "zeta", reply: "Hello!"},
		probeModel{name: "alpha", err: errors.New("404 model not found")},
		probeModel{name: "mid", reply: "   "},
	})

	if got := probe.Status(); len(got) != 0 {
		t.Fatalf("expected no status before the first run, got %v", got)
	}

	probe.Run(context.Background())
	got := probe.Status()
	if len(got) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(got))
	}

	want := []struct {
		model     string
		available bool
	}{
		{"alpha", false},
		{"mid", false},
		{"zeta", true},
	}
	for i, w := range want {
		if got[i].Model != w.model || got[i].Available != w.available {
			t.Errorf("status %d: expected %s available=%v, got %+v", i, w.model, w.available, got[i])
		}
	}
	if got[0].Error == "" {
		t.Error("expected the failure to be recorded")
	}
	if got[2].Latency == "" || got[2].CheckedAt.IsZero() {
		t.Errorf("expected latency and check time, got %+v", got[2])
	}
}

func TestInitCronJobsRejectsBadSchedule(t *testing.T) {
	t.Parallel()

	if _, err := InitCronJobs(NewModelProbe(nil), "not a schedule"); err == nil {
		t.Fatal("expected an invalid schedule to fail")
	}
}
