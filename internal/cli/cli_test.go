package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"standard-ai/internal/domain/models"
	"standard-ai/internal/eino/nodes"
)

func lambda[I, O any](t *testing.T, fn func(context.Context, I) (O, error)) compose.Runnable[I, O] {
	t.Helper()
	r, err := compose.NewChain[I, O]().
		AppendLambda(compose.InvokableLambda(fn)).
		Compile(context.Background())
	require.NoError(t, err)
	return r
}

type fakeResolver struct {
	uploaded string
	stored   string
}

func (f *fakeResolver) FromUpload(_ context.Context, filename string, _ []byte) (models.FileContextRef, error) {
	f.uploaded = filename
	return "file-upload", nil
}

func (f *fakeResolver) FromStore(_ context.Context, name string) (models.FileContextRef, error) {
	f.stored = name
	return "file-stored", nil
}

type fakeStore struct {
	names  []string
	search string
}

func (s *fakeStore) Get(context.Context, string) ([]byte, error) { return nil, models.ErrNotFound }

func (s *fakeStore) Put(context.Context, string, []byte) error { return nil }

func (s *fakeStore) SignURL(context.Context, string, time.Duration) (string, error) { return "", nil }

func (s *fakeStore) List(_ context.Context, search string) ([]string, error) {
	s.search = search
	return s.names, nil
}

type recorder struct {
	generation *nodes.GenerationInput
	review     *models.ReviewRequest
	chat       *nodes.ChatInput
	closed     bool
}

func newRuntime(t *testing.T, rec *recorder, resolver FileResolver, store *fakeStore) *Runtime {
	rt := &Runtime{
		Review: lambda(t, func(_ context.Context, req *models.ReviewRequest) (*models.ReviewResponse, error) {
			rec.review = req
			return &models.ReviewResponse{
				FileName: req.FileName,
				Result: &models.ReviewResult{
					StandardName: "GB/T 1.1",
					OverallScore: models.NewScore(85),
					DetailedChecks: map[models.CheckName]models.CheckResult{
						models.CheckFormatCompliance: {Score: models.NewScore(90), Findings: "ok"},
					},
					IssuesAndSuggestions: []models.Issue{
						{Clause: "4.1", IssueDescription: "术语不一致", Severity: models.SeverityModerate},
					},
				},
			}, nil
		}),
		Generation: lambda(t, func(_ context.Context, in *nodes.GenerationInput) (*nodes.GenerationOutput, error) {
			rec.generation = in
			return &nodes.GenerationOutput{Text: "generated " + string(in.Task)}, nil
		}),
		Chat: lambda(t, func(_ context.Context, in *nodes.ChatInput) (*models.ChatCompletion, error) {
			rec.chat = in
			return &models.ChatCompletion{Text: "reply", Usage: &models.Usage{TotalTokens: 7}}, nil
		}),
		Resolver: resolver,
		Close: func() error {
			rec.closed = true
			return nil
		},
	}
	if store != nil {
		rt.Store = store
	}
	return rt
}

func run(t *testing.T, rt *Runtime, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(func(context.Context) (*Runtime, error) { return rt, nil })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommandStructure(t *testing.T) {
	root := NewRootCmd(DefaultLoader)
	assert.Equal(t, "stdctl", root.Use)
	assert.NotEmpty(t, root.Short)
	assert.NotNil(t, root.PersistentFlags().Lookup("json"))

	want := []string{"review", "clause", "rewrite", "ask", "chat", "standards"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
		assert.True(t, cmd.RunE != nil || cmd.HasSubCommands(), name)
	}

	clause, _, _ := root.Find([]string{"clause"})
	assert.NotNil(t, clause.Flags().Lookup("type"))
	assert.NotNil(t, clause.Flags().Lookup("kind"))

	list, _, err := root.Find([]string{"standards", "list"})
	require.NoError(t, err)
	assert.NotNil(t, list.RunE)
}

func TestReviewCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 范围\n本标准规定了……"), 0o644))

	rec := &recorder{}
	out, err := run(t, newRuntime(t, rec, nil, nil), "review", path)
	require.NoError(t, err)

	require.NotNil(t, rec.review)
	assert.Equal(t, "draft.txt", rec.review.FileName)
	assert.Equal(t, "txt", rec.review.Format)
	assert.True(t, rec.closed)

	assert.Contains(t, out, "GB/T 1.1")
	assert.Contains(t, out, "Overall score: 85")
	assert.Contains(t, out, "format_compliance")
	assert.Contains(t, out, "[一般] 4.1: 术语不一致")
}

func TestReviewCommandMissingFile(t *testing.T) {
	rec := &recorder{}
	_, err := run(t, newRuntime(t, rec, nil, nil), "review", filepath.Join(t.TempDir(), "nope.docx"))
	require.Error(t, err)
	assert.Nil(t, rec.review)
}

func TestClauseCommand(t *testing.T) {
	rec := &recorder{}
	out, err := run(t, newRuntime(t, rec, nil, nil), "--json", "clause", "--type", "requirements", "--kind", "patent", "视频", "监控")
	require.NoError(t, err)

	require.NotNil(t, rec.generation)
	assert.Equal(t, nodes.TaskClause, rec.generation.Task)
	assert.Equal(t, models.UseCaseRequirements, rec.generation.Spec.UseCase)
	assert.Equal(t, models.DocumentKindPatent, rec.generation.Spec.DocumentKind)
	assert.Equal(t, "视频 监控", rec.generation.Spec.Topic)
	assert.JSONEq(t, `{"generatedText":"generated clause"}`, out)
}

func TestRewriteRequiresPrompt(t *testing.T) {
	rec := &recorder{}
	_, err := run(t, newRuntime(t, rec, nil, nil), "rewrite", "原文")
	require.Error(t, err)
	assert.Nil(t, rec.generation)

	out, err := run(t, newRuntime(t, rec, nil, nil), "rewrite", "--prompt", "更正式", "原文")
	require.NoError(t, err)
	assert.Equal(t, "原文", rec.generation.SelectedText)
	assert.Equal(t, "更正式", rec.generation.Instruction)
	assert.Equal(t, "generated rewrite\n", out)
}

func TestAskCommand(t *testing.T) {
	rec := &recorder{}
	_, err := run(t, newRuntime(t, rec, nil, nil), "ask", "什么是", "规范性引用文件？")
	require.NoError(t, err)
	assert.Equal(t, nodes.TaskAsk, rec.generation.Task)
	assert.Equal(t, "什么是 规范性引用文件？", rec.generation.Question)
}

func TestChatCommandWithStoredFile(t *testing.T) {
	rec := &recorder{}
	resolver := &fakeResolver{}
	out, err := run(t, newRuntime(t, rec, resolver, nil), "--json", "chat", "--stored", "GB 35114.docx", "总结一下")
	require.NoError(t, err)

	assert.Equal(t, "GB 35114.docx", resolver.stored)
	require.NotNil(t, rec.chat)
	assert.Equal(t, models.FileContextRef("file-stored"), rec.chat.FileRef)
	require.Len(t, rec.chat.History, 1)
	assert.Equal(t, models.RoleUser, rec.chat.History[0].Role)
	assert.JSONEq(t, `{"response":"reply","fileId":"file-stored","usage":{"prompt_tokens":0,"completion_tokens":0,"total_tokens":7}}`, out)
}

func TestChatCommandWithLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.docx")
	require.NoError(t, os.WriteFile(path, []byte("PK"), 0o644))

	rec := &recorder{}
	resolver := &fakeResolver{}
	_, err := run(t, newRuntime(t, rec, resolver, nil), "chat", "-f", path, "hi")
	require.NoError(t, err)
	assert.Equal(t, "draft.docx", resolver.uploaded)
	assert.Equal(t, models.FileContextRef("file-upload"), rec.chat.FileRef)
}

func TestChatCommandRejectsBothSources(t *testing.T) {
	rec := &recorder{}
	_, err := run(t, newRuntime(t, rec, &fakeResolver{}, nil), "chat", "-f", "a.docx", "-s", "b.docx", "hi")
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
	assert.Nil(t, rec.chat)
}

func TestStandardsList(t *testing.T) {
	rec := &recorder{}
	store := &fakeStore{names: []string{"GA 1400.docx", "GB 35114.docx"}}
	out, err := run(t, newRuntime(t, rec, nil, store), "standards", "list", "--search", "gb")
	require.NoError(t, err)
	assert.Equal(t, "gb", store.search)
	assert.Equal(t, "GA 1400.docx\nGB 35114.docx\n", out)

	_, err = run(t, newRuntime(t, rec, nil, nil), "standards", "list")
	assert.True(t, errors.Is(err, models.ErrStoreUnavailable))
}

func TestLoaderError(t *testing.T) {
	boom := errors.New("bad config")
	root := NewRootCmd(func(context.Context) (*Runtime, error) { return nil, boom })
	root.SetArgs([]string{"ask", "q"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.True(t, errors.Is(root.Execute(), boom))
}

func TestDescribe(t *testing.T) {
	assert.Contains(t, describe(models.ErrMissingCredential), "DASHSCOPE_API_KEY")
	assert.Contains(t, describe(&models.UpstreamError{StatusCode: 401, Body: "denied"}), "status 401: denied")
	assert.Contains(t, describe(&models.TransportError{Op: "chat", Err: errors.New("timeout")}), "cannot reach model service")
	assert.Equal(t, "plain", describe(errors.New("plain")))
}
