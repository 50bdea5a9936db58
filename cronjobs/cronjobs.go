package cronjobs

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"go-healthai/llm"
	"go-healthai/metrics"
	"go-healthai/types"
)

const (
	DefaultSchedule = "*/30 * * * *"

	probeMessage = "Say hello"
	probeTimeout = 20 * time.Second
)

// ModelStatus is the outcome of the last probe of one model.
type ModelStatus struct {
	Model     string    `json:"model"`
	Available bool      `json:"available"`
	Error     string    `json:"error,omitempty"`
	Latency   string    `json:"latency,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// ModelProbe periodically sends a trivial prompt to every configured model and
// keeps the latest result per model. The chat pipeline never reads it.
type ModelProbe struct {
	models []llm.Model

	mu     sync.RWMutex
	status map[string]ModelStatus

	now func() time.Time
}

func NewModelProbe(models []llm.Model) *ModelProbe {
	return &ModelProbe{
		models: models,
		status: make(map[string]ModelStatus, len(models)),
		now:    time.Now,
	}
}

// Run probes every model once, one after another.
func (p *ModelProbe) Run(ctx context.Context) {
	for _, m := range p.models {
		p.probe(ctx, m)
	}
}

func (p *ModelProbe) probe(ctx context.Context, m llm.Model) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := p.now()
	reply, err := m.Generate(ctx, llm.Prompt{
		Message:  probeMessage,
		Language: types.LanguageEnglish,
	})
	if err == nil && strings.TrimSpace(reply) == "" {
		err = llm.ErrEmptyResponse
	}

	st := ModelStatus{Model: m.Name(), Available: err == nil, CheckedAt: p.now().UTC()}
	if err != nil {
		st.Error = err.Error()
		log.Printf("CronJob: model %s unavailable: %v", m.Name(), err)
	} else {
		st.Latency = p.now().Sub(start).Round(time.Millisecond).String()
	}
	metrics.SetModelUp(m.Name(), st.Available)

	p.mu.Lock()
	p.status[m.Name()] = st
	p.mu.Unlock()
}

// Status returns the last result per model, sorted by model name. Models that
// were never probed are omitted.
func (p *ModelProbe) Status() []ModelStatus {
	p.mu.RLock()
	out := make([]ModelStatus, 0, len(p.status))
	for _, st := range p.status {
		out = append(out, st)
	}
	p.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out
}

// InitCronJobs schedules the model probe and runs it once immediately. The
// returned cron must be stopped on shutdown.
func InitCronJobs(probe *ModelProbe, schedule string) (*cron.Cron, error) {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	if schedule == "" {
		schedule = DefaultSchedule
	}

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		log.Println("\nCronJob: Model Probe Running")
		probe.Run(context.Background())
	})
	if err != nil {
		log.Println("Error scheduling Model Probe:", err)
		return nil, err
	}

	go probe.Run(context.Background())
	c.Start()
	return c, nil
}
