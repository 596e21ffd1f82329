package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// corpusFile is the on-disk JSON shape of one corpus file.
type corpusFile struct {
	Category string `json:"category"`
	Items    []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"items"`
}

// Service owns the corpus and both search paths. Reads take the read
// lock; corpus reloads and AddDocument swap the index under the write lock.
type Service struct {
	dir string
	fts *ftsStore

	mu    sync.RWMutex
	docs  []*Document
	index *tfidfIndex
}

// NewService loads every *.json corpus file under dir and builds the
// indexes. ftsPath may be empty to run without full-text search.
func NewService(dir, ftsPath string) (*Service, error) {
	s := &Service{dir: dir}
	if ftsPath != "" {
		fts, err := openFTS(ftsPath)
		if err != nil {
			return nil, err
		}
		s.fts = fts
	}
	if err := s.Reload(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the FTS handle.
func (s *Service) Close() error {
	return s.fts.close()
}

// DocumentCount reports the indexed corpus size.
func (s *Service) DocumentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Reload re-reads the corpus directory and rebuilds both indexes.
func (s *Service) Reload(ctx context.Context) error {
	docs, err := loadCorpus(s.dir)
	if err != nil {
		return err
	}
	return s.swap(ctx, docs)
}

// AddDocument appends a document and rebuilds synchronously, so the next
// lookup sees it.
func (s *Service) AddDocument(ctx context.Context, category, title, content string) (*Document, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("knowledge: title and content are required")
	}

	s.mu.RLock()
	n := len(s.docs)
	docs := make([]*Document, n, n+1)
	copy(docs, s.docs)
	s.mu.RUnlock()

	doc := &Document{
		ID:       fmt.Sprintf("user_%d", n),
		Category: category,
		Title:    title,
		Content:  content,
	}
	docs = append(docs, doc)
	if err := s.swap(ctx, docs); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) swap(ctx context.Context, docs []*Document) error {
	index := buildIndex(docs)

	s.mu.Lock()
	s.docs = docs
	s.index = index
	s.mu.Unlock()

	if s.fts != nil {
		if err := s.fts.replaceAll(ctx, docs); err != nil {
			return err
		}
	}
	log.Info().Int("documents", len(docs)).Msg("Knowledge index rebuilt")
	return nil
}

// Search runs the hybrid lookup: FTS5 when available, TF-IDF as fallback
// when FTS yields nothing.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	if topK <= 0 {
		topK = defaultTopK
	}
	if s.fts != nil {
		results, err := s.fts.search(ctx, query, topK)
		if err != nil {
			log.Warn().Err(err).Msg("FTS search failed, falling back to TF-IDF")
		} else if len(results) > 0 {
			return results, nil
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.index == nil {
		return nil, nil
	}
	return s.index.search(query, topK), nil
}

// Categories lists the distinct corpus categories.
func (s *Service) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]bool{}
	var out []string
	for _, d := range s.docs {
		if !seen[d.Category] {
			seen[d.Category] = true
			out = append(out, d.Category)
		}
	}
	return out
}

// Watch reloads the corpus when files under the directory change. Blocks
// until ctx is cancelled.
func (s *Service) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("knowledge: creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("knowledge: watching %s: %w", s.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			log.Info().Str("file", event.Name).Msg("Knowledge corpus changed, reloading")
			if err := s.Reload(ctx); err != nil {
				log.Error().Err(err).Msg("Failed to reload knowledge corpus")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("Knowledge watcher error")
		}
	}
}

// loadCorpus reads every *.json file in dir. Document IDs are
// "<file stem>_<index>" so they stay stable across reloads.
func loadCorpus(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("knowledge: reading corpus dir: %w", err)
	}

	var docs []*Document
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("knowledge: reading %s: %w", entry.Name(), err)
		}
		var file corpusFile
		if err := json.Unmarshal(raw, &file); err != nil {
			log.Warn().Str("file", entry.Name()).Err(err).Msg("Skipping malformed corpus file")
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), ".json")
		for i, item := range file.Items {
			docs = append(docs, &Document{
				ID:       fmt.Sprintf("%s_%d", stem, i),
				Category: file.Category,
				Title:    item.Title,
				Content:  item.Content,
			})
		}
	}
	return docs, nil
}
