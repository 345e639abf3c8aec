package viewer_test

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/fwojciec/docview"
	"github.com/fwojciec/docview/mock"
	"github.com/fwojciec/docview/viewer"
)

// site is an in-memory documentation site that counts fetches per name.
type site struct {
	mu      sync.Mutex
	files   map[string]string
	fetches map[string]int
	names   []string
}

func newSite(files map[string]string) *site {
	if files == nil {
		files = map[string]string{}
	}
	return &site{files: files, fetches: map[string]int{}}
}

func (s *site) source() *mock.Source {
	return &mock.Source{
		FetchFn: func(_ context.Context, name string) (string, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.names = append(s.names, name)
			key, _, _ := strings.Cut(name, "?")
			s.fetches[key]++
			content, ok := s.files[key]
			if !ok {
				return "", docview.Errorf(docview.ENOTFOUND, "HTTP 404 for %s", name)
			}
			return content, nil
		},
	}
}

func (s *site) set(name, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = content
}

func (s *site) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches[name]
}

func (s *site) requested() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}

// paragraphRenderer wraps each blank-line separated block in <p>.
func paragraphRenderer() *mock.Renderer {
	return &mock.Renderer{
		RenderFn: func(text string) (string, error) {
			var b strings.Builder
			for _, block := range strings.Split(strings.TrimSpace(text), "\n\n") {
				b.WriteString("<p>" + block + "</p>\n")
			}
			return b.String(), nil
		},
	}
}

func newDocuments(s *site, scheduler docview.Scheduler) *viewer.Documents {
	return viewer.NewDocuments(s.source(), viewer.NewContentRenderer(paragraphRenderer()), viewer.NewCache(), scheduler)
}

// jsonConfigParser decodes config with encoding/json on top of the defaults.
func jsonConfigParser() *mock.ConfigParser {
	return &mock.ConfigParser{
		ParseConfigFn: func(data []byte) (*docview.Config, error) {
			cfg := docview.DefaultConfig()
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, docview.Errorf(docview.EINVALID, "invalid config: %v", err)
			}
			return cfg, nil
		},
	}
}
