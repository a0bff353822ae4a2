package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/topicscope/pkg/repository"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>AI News</title>
	<link>http://example.com</link>
	<item>
		<title>OpenAI ships GPT-5: what changed</title>
		<link>http://example.com/gpt5</link>
		<description>The new LLM is faster.</description>
	</item>
	<item>
		<title>GPT-5 benchmarks against older LLM releases</title>
		<link>http://example.com/gpt5-bench</link>
		<description>Numbers for the new model.</description>
	</item>
	<item>
		<title>Best pasta recipes</title>
		<link>http://example.com/pasta</link>
		<description>Cooking at home.</description>
	</item>
</channel>
</rss>`

func TestRun_MissingConfig(t *testing.T) {
	err := run(context.Background(), Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o600))

	err := run(context.Background(), Opts{Config: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_Once(t *testing.T) {
	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testFeed))
	}))
	defer feedSrv.Close()

	embedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Input, 1)
		vec := []float32{0, 1}
		if strings.Contains(req.Input[0], "GPT-5") {
			vec = []float32{1, 0.05}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.EmbeddingResponse{Object: "list",
			Data: []openai.Embedding{{Object: "embedding", Embedding: vec}}})
	}))
	defer embedSrv.Close()

	dir := t.TempDir()
	dsn := "file:" + filepath.Join(dir, "test.db") + "?mode=rwc&_txlock=immediate"
	cfgPath := filepath.Join(dir, "config.yml")
	cfgBody := fmt.Sprintf(`
database:
  dsn: %q
embedding:
  endpoint: %s/v1
  api_key: test-key
  retries: 1
sources:
  - name: AI News
    url: %s/rss
`, dsn, embedSrv.URL, feedSrv.URL)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgBody), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, run(ctx, Opts{Config: cfgPath, Once: true}))

	repos, err := repository.NewRepositories(ctx, repository.Config{DSN: dsn, MaxOpenConns: 1})
	require.NoError(t, err)
	defer repos.Close()

	total, assigned, err := repos.Item.CountItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, assigned, "pasta item is filtered out")

	topics, err := repos.Topic.GetTopics(ctx, 10)
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "OpenAI ships GPT-5", topics[0].Title)
	assert.Equal(t, 2, topics[0].ItemCount)

	last, err := repos.Run.GetLastRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, 1, last.TopicsCreated)
	assert.Equal(t, 1, last.ItemsAssigned)
	assert.Equal(t, 1, last.ItemsFiltered)
}

func TestRun_ServerStartStop(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	cfgBody := fmt.Sprintf(`
server:
  listen: "127.0.0.1:%d"
database:
  dsn: "file:%s?mode=rwc&_txlock=immediate"
`, port, filepath.Join(dir, "srv.db"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgBody), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, Opts{Config: cfgPath}) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/api/v1/status", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not stop")
	}
}

func TestSetupLog(t *testing.T) {
	setupLog(true, "", "secret")
	setupLog(false)
}
