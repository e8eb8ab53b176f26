package generation

import (
	"context"
	"sync"

	"github.com/zjrosen/rtkit/internal/config"
	"github.com/zjrosen/rtkit/internal/gamma"
)

// fakeAPI is a scripted stand-in for the Gamma client.
type fakeAPI struct {
	mu sync.Mutex

	createID  string
	createErr error
	statuses  []gamma.Generation // returned in order; the last one repeats
	statusErr error

	generateReqs []gamma.GenerateRequest
	templateReqs []gamma.TemplateRequest
	polls        int
}

func (f *fakeAPI) Generate(_ context.Context, req gamma.GenerateRequest) (gamma.CreateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generateReqs = append(f.generateReqs, req)
	return gamma.CreateResponse{GenerationID: f.createID}, f.createErr
}

func (f *fakeAPI) GenerateFromTemplate(_ context.Context, req gamma.TemplateRequest) (gamma.CreateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.templateReqs = append(f.templateReqs, req)
	return gamma.CreateResponse{GenerationID: f.createID}, f.createErr
}

func (f *fakeAPI) GetGeneration(_ context.Context, id string) (gamma.Generation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls++
	if f.statusErr != nil {
		return gamma.Generation{}, f.statusErr
	}
	if len(f.statuses) == 0 {
		return gamma.Generation{GenerationID: id, Status: gamma.StatusPending}, nil
	}
	idx := f.polls - 1
	if idx >= len(f.statuses) {
		idx = len(f.statuses) - 1
	}
	return f.statuses[idx], nil
}

// testConfig returns a valid config for tests.
func testConfig() config.GammaConfig {
	cfg := config.DefaultGamma()
	cfg.APIKey = "sk-test"
	return cfg
}

// newTestGenerator returns a generator that never actually sleeps.
func newTestGenerator(api API, cfg config.GammaConfig, opts ...Option) *Generator {
	g := New(api, cfg, append([]Option{WithPollInterval(0)}, opts...)...)
	return g
}
