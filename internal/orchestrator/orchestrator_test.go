package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aleister1102/newswatch/internal/common"
	"github.com/aleister1102/newswatch/internal/config"
	"github.com/aleister1102/newswatch/internal/datastore"
	"github.com/aleister1102/newswatch/internal/differ"
	"github.com/aleister1102/newswatch/internal/extractor"
	"github.com/aleister1102/newswatch/internal/httpclient"
	"github.com/aleister1102/newswatch/internal/models"
	"github.com/aleister1102/newswatch/internal/notifier"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// site serves mutable pages keyed by path.
type site struct {
	mu    sync.Mutex
	pages map[string]string
}

func (s *site) set(path, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[path] = body
}

func (s *site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	body, ok := s.pages[r.URL.Path]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

// webhook records every message posted to it.
type webhook struct {
	mu       sync.Mutex
	messages []string
}

func (h *webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var payload notifier.WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.mu.Lock()
	h.messages = append(h.messages, payload.Content)
	h.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (h *webhook) received() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.messages...)
}

// countingStore counts writes that reach the real store.
type countingStore struct {
	*datastore.SnapshotStore
	writes int
}

func (s *countingStore) Write(targetName, text string) error {
	s.writes++
	return s.SnapshotStore.Write(targetName, text)
}

type harness struct {
	site      *site
	siteURL   string
	hook      *webhook
	snapshots *countingStore
	logPath   string
	orch      *Orchestrator
}

func newHarness(t *testing.T, credential string) *harness {
	t.Helper()
	logger := zerolog.Nop()
	dir := t.TempDir()

	pages := &site{pages: map[string]string{}}
	siteServer := httptest.NewServer(pages)
	t.Cleanup(siteServer.Close)

	hook := &webhook{}
	hookServer := httptest.NewServer(hook)
	t.Cleanup(hookServer.Close)

	client, err := httpclient.NewHTTPClientBuilder(logger).Build()
	require.NoError(t, err)

	notifyCfg := config.NewDefaultNotificationConfig()
	notifyCfg.WebhookURL = hookServer.URL + "/hook/{key}"
	n := notifier.NewWebhookNotifier(notifyCfg, credential, logger)

	clock := func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, common.JST) }
	logPath := filepath.Join(dir, "diff_history.log")
	snapshots := &countingStore{SnapshotStore: datastore.NewSnapshotStore(filepath.Join(dir, "snapshots"), logger)}

	orch := NewOrchestrator(Dependencies{
		Extractor: extractor.NewExtractor(client, logger),
		Snapshots: snapshots,
		ChangeLog: datastore.NewChangeLog(logPath, clock, logger),
		Differ:    differ.NewContentDiffer(logger),
		Notifier:  n,
	}, logger)

	return &harness{
		site:      pages,
		siteURL:   siteServer.URL,
		hook:      hook,
		snapshots: snapshots,
		logPath:   logPath,
		orch:      orch,
	}
}

func (h *harness) changeLog(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(h.logPath)
	if errors.Is(err, os.ErrNotExist) {
		return ""
	}
	require.NoError(t, err)
	return string(data)
}

func (h *harness) alpha() models.Target {
	return models.Target{
		Name:     "Alpha",
		URL:      h.siteURL + "/alpha",
		Selector: models.Selector{Tag: "section", Class: "news"},
	}
}

func TestRun_ChangeLifecycle(t *testing.T) {
	h := newHarness(t, "secret")
	targets := []models.Target{h.alpha()}

	// First run: everything is new.
	h.site.set("/alpha", `<html><body><section class="news">Hello</section></body></html>`)
	summary := h.orch.Run(context.Background(), targets)

	assert.Equal(t, models.RunSummary{Total: 1, Changed: 1, ChangedNames: []string{"Alpha"}}, summary)
	snapshot, err := h.snapshots.Read("Alpha")
	require.NoError(t, err)
	assert.Equal(t, "Hello", snapshot)
	assert.Equal(t,
		"[2024-05-01 12:00:00] Alpha\n--- before\n+++ after\n@@ -0,0 +1 @@\n+Hello\n\n",
		h.changeLog(t))

	messages := h.hook.received()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "Alpha")
	assert.Contains(t, messages[0], "Hello")

	// Second run: same page.
	summary = h.orch.Run(context.Background(), targets)

	assert.Equal(t, 1, summary.Unchanged)
	assert.Equal(t, 1, h.snapshots.writes)
	assert.True(t, strings.HasSuffix(h.changeLog(t), "[2024-05-01 12:00:00] Alpha (no change)\n\n"))
	assert.Len(t, h.hook.received(), 1)

	// Third run: content edited.
	h.site.set("/alpha", `<html><body><section class="news">Hello World</section></body></html>`)
	summary = h.orch.Run(context.Background(), targets)

	assert.Equal(t, 1, summary.Changed)
	snapshot, err = h.snapshots.Read("Alpha")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", snapshot)
	assert.True(t, strings.HasSuffix(h.changeLog(t), "Alpha\n--- before\n+++ after\n@@ -1 +1 @@\n-Hello\n+Hello World\n\n"))

	messages = h.hook.received()
	require.Len(t, messages, 2)
	assert.Contains(t, messages[1], "-Hello\n+Hello World")
	assert.Contains(t, messages[1], "+1/-1 lines")
}

func TestRun_LongDiffIsTruncatedInNotification(t *testing.T) {
	h := newHarness(t, "secret")
	h.site.set("/alpha", `<section class="news">`+strings.Repeat("<p>新しいお知らせがあります</p>", 200)+`</section>`)

	h.orch.Run(context.Background(), []models.Target{h.alpha()})

	messages := h.hook.received()
	require.Len(t, messages, 1)
	assert.Equal(t, config.DefaultMaxMessageLength, len([]rune(messages[0])))

	// The log keeps the full diff.
	assert.Greater(t, len([]rune(h.changeLog(t))), config.DefaultMaxMessageLength)
}

func TestRun_SkippedTargetDoesNotStopRun(t *testing.T) {
	h := newHarness(t, "secret")
	h.site.set("/alpha", `<section class="news">Hello</section>`)
	h.site.set("/loader", `<html><body>no scripts</body></html>`)

	targets := []models.Target{
		{
			Name:           "Beta",
			URL:            h.siteURL + "/loader",
			Mode:           models.ModeScriptPayload,
			PayloadSubtype: models.PayloadIndirect,
		},
		h.alpha(),
	}

	var summary models.RunSummary
	require.NotPanics(t, func() {
		summary = h.orch.Run(context.Background(), targets)
	})

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, []string{"Alpha"}, summary.ChangedNames)
	assert.NotContains(t, h.changeLog(t), "Beta")
	assert.NoFileExists(t, h.snapshots.PathFor("Beta"))
}

func TestRun_NoCredentialStillRecordsChange(t *testing.T) {
	h := newHarness(t, "")
	h.site.set("/alpha", `<section class="news">Hello</section>`)

	summary := h.orch.Run(context.Background(), []models.Target{h.alpha()})

	assert.Equal(t, 1, summary.Changed)
	assert.Zero(t, summary.NotifyFailed)
	assert.Contains(t, h.changeLog(t), "+Hello")
	assert.FileExists(t, h.snapshots.PathFor("Alpha"))
	assert.Empty(t, h.hook.received())
}

type fakeExtractor map[string]string

func (f fakeExtractor) Extract(ctx context.Context, target models.Target) (string, error) {
	text, ok := f[target.Name]
	if !ok {
		return "", extractor.ErrNotFound
	}
	return text, nil
}

type memoryStore struct {
	data     map[string]string
	writeErr error
}

func (m *memoryStore) Read(name string) (string, error) { return m.data[name], nil }

func (m *memoryStore) Write(name, text string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data[name] = text
	return nil
}

type memoryLog struct {
	records   []models.ChangeRecord
	appendErr error
}

func (m *memoryLog) Append(record models.ChangeRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.records = append(m.records, record)
	return nil
}

type fakeNotifier struct {
	calls []string
	err   error
}

func (f *fakeNotifier) Notify(ctx context.Context, targetName, diffText string, stats differ.DiffStatistics) error {
	f.calls = append(f.calls, targetName)
	return f.err
}

func TestRun_SnapshotWriteFailureSkipsLogAndNotify(t *testing.T) {
	log := &memoryLog{}
	notify := &fakeNotifier{}
	orch := NewOrchestrator(Dependencies{
		Extractor: fakeExtractor{"Alpha": "Hello"},
		Snapshots: &memoryStore{data: map[string]string{}, writeErr: errors.New("disk full")},
		ChangeLog: log,
		Differ:    differ.NewContentDiffer(zerolog.Nop()),
		Notifier:  notify,
	}, zerolog.Nop())

	summary := orch.Run(context.Background(), []models.Target{{Name: "Alpha"}})

	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, log.records)
	assert.Empty(t, notify.calls)
}

func TestRun_NotificationFailureDoesNotRollBack(t *testing.T) {
	store := &memoryStore{data: map[string]string{"Alpha": "old"}}
	log := &memoryLog{}
	notify := &fakeNotifier{err: errors.New("webhook down")}
	orch := NewOrchestrator(Dependencies{
		Extractor: fakeExtractor{"Alpha": "new", "Beta": "same"},
		Snapshots: store,
		ChangeLog: log,
		Differ:    differ.NewContentDiffer(zerolog.Nop()),
		Notifier:  notify,
	}, zerolog.Nop())

	summary := orch.Run(context.Background(), []models.Target{{Name: "Alpha"}, {Name: "Beta"}})

	assert.Equal(t, 2, summary.Changed)
	assert.Equal(t, 2, summary.NotifyFailed)
	assert.Equal(t, "new", store.data["Alpha"])
	assert.Len(t, log.records, 2)
	assert.Equal(t, []string{"Alpha", "Beta"}, notify.calls)
}

func TestRun_ChangeLogFailureStillNotifies(t *testing.T) {
	notify := &fakeNotifier{}
	orch := NewOrchestrator(Dependencies{
		Extractor: fakeExtractor{"Alpha": "Hello"},
		Snapshots: &memoryStore{data: map[string]string{}},
		ChangeLog: &memoryLog{appendErr: errors.New("read-only")},
		Differ:    differ.NewContentDiffer(zerolog.Nop()),
		Notifier:  notify,
	}, zerolog.Nop())

	summary := orch.Run(context.Background(), []models.Target{{Name: "Alpha"}})

	assert.Equal(t, 1, summary.Changed)
	assert.Equal(t, []string{"Alpha"}, notify.calls)
}

func TestRun_CancelledContextStopsBeforeNextTarget(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	log := &memoryLog{}
	orch := NewOrchestrator(Dependencies{
		Extractor: fakeExtractor{"Alpha": "Hello"},
		Snapshots: &memoryStore{data: map[string]string{}},
		ChangeLog: log,
		Differ:    differ.NewContentDiffer(zerolog.Nop()),
		Notifier:  &fakeNotifier{},
	}, zerolog.Nop())

	summary := orch.Run(ctx, []models.Target{{Name: "Alpha"}})

	assert.Zero(t, summary.Total)
	assert.Empty(t, log.records)
}

// cancellingExtractor cancels the run while the first target is being fetched.
type cancellingExtractor struct {
	cancel context.CancelFunc
	seen   []error
}

func (c *cancellingExtractor) Extract(ctx context.Context, target models.Target) (string, error) {
	c.cancel()
	c.seen = append(c.seen, ctx.Err())
	return "Hello", nil
}

type ctxRecordingNotifier struct {
	errs []error
}

func (n *ctxRecordingNotifier) Notify(ctx context.Context, targetName, diffText string, stats differ.DiffStatistics) error {
	n.errs = append(n.errs, ctx.Err())
	return nil
}

func TestRun_CancelDuringTargetFinishesIt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	extract := &cancellingExtractor{cancel: cancel}
	store := &memoryStore{data: map[string]string{}}
	log := &memoryLog{}
	notify := &ctxRecordingNotifier{}
	orch := NewOrchestrator(Dependencies{
		Extractor: extract,
		Snapshots: store,
		ChangeLog: log,
		Differ:    differ.NewContentDiffer(zerolog.Nop()),
		Notifier:  notify,
	}, zerolog.Nop())

	summary := orch.Run(ctx, []models.Target{{Name: "Alpha"}, {Name: "Beta"}})

	assert.Equal(t, models.RunSummary{Total: 1, Changed: 1, ChangedNames: []string{"Alpha"}}, summary)
	assert.Equal(t, []error{nil}, extract.seen)
	assert.Equal(t, "Hello", store.data["Alpha"])
	assert.Len(t, log.records, 1)
	assert.Equal(t, []error{nil}, notify.errs)
}
