package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blogfolio/backend/internal/config"
	authordomain "blogfolio/backend/internal/domain/author"
	"blogfolio/backend/internal/infrastructure/memory"
	"blogfolio/backend/internal/infrastructure/token"
	authusecase "blogfolio/backend/internal/usecase/auth"
	authorusecase "blogfolio/backend/internal/usecase/author"
	blogpostusecase "blogfolio/backend/internal/usecase/blogpost"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImageStore struct {
	uploads []string
}

func (f *fakeImageStore) Upload(_ context.Context, key, _ string, _ io.Reader) (string, error) {
	f.uploads = append(f.uploads, key)
	return "https://cdn.test/" + key, nil
}

type testEnv struct {
	server  *Server
	authors *memory.AuthorRepository
	posts   *memory.BlogpostRepository
	tokens  *token.JWTManager
	images  *fakeImageStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	authors := memory.NewAuthorRepository()
	posts := memory.NewBlogpostRepository()
	tokens := token.NewJWTManager("test-secret", time.Hour, "blogfolio-test")
	images := &fakeImageStore{}

	cfg := config.Config{
		HTTPPort:       "8080",
		AllowedOrigins: []string{"*"},
	}

	server := NewServer(
		cfg,
		nil,
		authusecase.NewService(authors, tokens),
		authorusecase.NewService(authors),
		blogpostusecase.NewService(posts, nil, nil),
		images,
	)
	return &testEnv{server: server, authors: authors, posts: posts, tokens: tokens, images: images}
}

func (e *testEnv) seedAccount(t *testing.T, id, email, password string, role authordomain.Role) *authordomain.Account {
	t.Helper()

	hash, err := authusecase.HashPassword(password)
	require.NoError(t, err)
	now := time.Now().UTC()
	account := &authordomain.Account{
		ID:           id,
		Email:        email,
		Name:         "Test",
		Surname:      "Account",
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, e.authors.Create(context.Background(), account))
	return account
}

func (e *testEnv) tokenFor(t *testing.T, account *authordomain.Account) string {
	t.Helper()

	tok, err := e.tokens.Generate(account.ID, account.Role)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	e.server.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), "body: %s", rec.Body.String())
	return payload
}

func (e *testEnv) createPost(t *testing.T, bearer string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/blogposts", bearer, map[string]any{
		"category": "go",
		"title":    "Error handling",
		"content":  "Errors are values.",
		"readTime": map[string]any{"value": 4, "unit": "minutes"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)["id"].(string)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/authors/register", "", map[string]any{
		"email":    "ada@x.com",
		"password": "secret",
		"name":     "Ada",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["id"])

	rec = env.do(t, http.MethodPost, "/authors/login", "", map[string]any{
		"email":    "ada@x.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.NotEmpty(t, body["token"])
	author := body["author"].(map[string]any)
	assert.Equal(t, "ada@x.com", author["email"])
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	payload := map[string]any{"email": "ada@x.com", "password": "secret"}
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/authors/register", "", payload).Code)

	rec := env.do(t, http.MethodPost, "/authors/register", "", payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}

func TestRegisterValidationEnvelope(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/authors/register", "", map[string]any{"email": "nope"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	list, ok := body["errorsList"].([]any)
	require.True(t, ok, "errorsList missing: %s", rec.Body.String())
	assert.Len(t, list, 2)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)

	wrongPassword := env.do(t, http.MethodPost, "/authors/login", "", map[string]any{
		"email": "ada@x.com", "password": "nope",
	})
	unknownEmail := env.do(t, http.MethodPost, "/authors/login", "", map[string]any{
		"email": "ghost@x.com", "password": "secret",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestCheckEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)

	rec := env.do(t, http.MethodPost, "/authors/checkEmail", "", map[string]any{"email": "ada@x.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["unavailable"])

	rec = env.do(t, http.MethodPost, "/authors/checkEmail", "", map[string]any{"email": "free@x.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["unavailable"])

	rec = env.do(t, http.MethodPost, "/authors/checkEmail", "", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthorsListAdminOnly(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	author := env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)
	admin := env.seedAccount(t, "adm", "root@x.com", "secret", authordomain.RoleAdmin)

	rec := env.do(t, http.MethodGet, "/authors", env.tokenFor(t, author), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/authors", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/authors?limit=500", env.tokenFor(t, admin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(2), body["total"])
	assert.Equal(t, float64(100), body["limit"], "limit clamps to the maximum page size")
	assert.Len(t, body["items"].([]any), 2)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestAuthorSelfOrAdmin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ada := env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)
	bob := env.seedAccount(t, "b1", "bob@x.com", "secret", authordomain.RoleAuthor)
	admin := env.seedAccount(t, "adm", "root@x.com", "secret", authordomain.RoleAdmin)

	// Self reads fine, a stranger is refused, an admin reads anyone.
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/authors/a1", env.tokenFor(t, ada), nil).Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodGet, "/authors/a1", env.tokenFor(t, bob), nil).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/authors/a1", env.tokenFor(t, admin), nil).Code)

	// A missing target is 404 even for admins; authorization never masks it.
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/authors/missing", env.tokenFor(t, admin), nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/authors/missing", env.tokenFor(t, ada), nil).Code)
}

func TestAuthorRouteRejectsBasicScheme(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)

	req := httptest.NewRequest(http.MethodGet, "/authors/a1", nil)
	req.SetBasicAuth("ada@x.com", "secret")
	rec := httptest.NewRecorder()
	env.server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code, "bearer routes never accept Basic credentials")
}

func TestAuthorUpdateRoleChange(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ada := env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)
	admin := env.seedAccount(t, "adm", "root@x.com", "secret", authordomain.RoleAdmin)

	rec := env.do(t, http.MethodPut, "/authors/a1", env.tokenFor(t, ada), map[string]any{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, rec.Code, "authors cannot change their own role")

	rec = env.do(t, http.MethodPut, "/authors/a1", env.tokenFor(t, admin), map[string]any{"role": "admin"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "admin", decodeBody(t, rec)["role"])

	rec = env.do(t, http.MethodPut, "/authors/a1", env.tokenFor(t, admin), map[string]any{"role": "czar"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthorDelete(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ada := env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)

	rec := env.do(t, http.MethodDelete, "/authors/a1", env.tokenFor(t, ada), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, env.authors.Count())
}

func TestMeBasicAuth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)

	doBasic := func(method, email, password string, body any) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != nil {
			encoded, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(encoded)
		}
		req := httptest.NewRequest(method, "/authors/me", reader)
		if email != "" {
			req.SetBasicAuth(email, password)
		}
		rec := httptest.NewRecorder()
		env.server.Router().ServeHTTP(rec, req)
		return rec
	}

	rec := doBasic(http.MethodGet, "ada@x.com", "secret", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	author := decodeBody(t, rec)["author"].(map[string]any)
	assert.Equal(t, "a1", author["id"])

	// Wrong password and unknown email produce the same refusal.
	wrongPassword := doBasic(http.MethodGet, "ada@x.com", "nope", nil)
	unknownEmail := doBasic(http.MethodGet, "ghost@x.com", "secret", nil)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())

	assert.Equal(t, http.StatusUnauthorized, doBasic(http.MethodGet, "", "", nil).Code)

	// Role changes are admin territory, even on the self-service route.
	rec = doBasic(http.MethodPut, "ada@x.com", "secret", map[string]any{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doBasic(http.MethodPut, "ada@x.com", "secret", map[string]any{"name": "Augusta"})
	require.Equal(t, http.StatusOK, rec.Code)
	author = decodeBody(t, rec)["author"].(map[string]any)
	assert.Equal(t, "Augusta", author["name"])

	assert.Equal(t, http.StatusNoContent, doBasic(http.MethodDelete, "ada@x.com", "secret", nil).Code)
	assert.Equal(t, 0, env.authors.Count())
}

func TestBlogpostCreateRequiresToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/blogposts", "", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBlogpostCreateValidationEnvelope(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ada := env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)

	rec := env.do(t, http.MethodPost, "/blogposts", env.tokenFor(t, ada), map[string]any{
		"readTime": map[string]any{"value": 0, "unit": "eons"},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["errorsList"])
}

func TestBlogpostListPublic(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ada := env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)
	env.createPost(t, env.tokenFor(t, ada))

	rec := env.do(t, http.MethodGet, "/blogposts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["total"])
	assert.Len(t, body["items"].([]any), 1)
}

func TestBlogpostOwnerOrAdmin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ada := env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)
	bob := env.seedAccount(t, "b1", "bob@x.com", "secret", authordomain.RoleAuthor)
	admin := env.seedAccount(t, "adm", "root@x.com", "secret", authordomain.RoleAdmin)
	postID := env.createPost(t, env.tokenFor(t, ada))

	update := map[string]any{"title": "Edited"}

	// Anyone may read; only the owner or an admin may write.
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/blogposts/"+postID, "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPut, "/blogposts/"+postID, "", update).Code)
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodPut, "/blogposts/"+postID, env.tokenFor(t, bob), update).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPut, "/blogposts/"+postID, env.tokenFor(t, ada), update).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPut, "/blogposts/"+postID, env.tokenFor(t, admin), update).Code)

	// A missing post is 404 before any privilege question.
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPut, "/blogposts/missing", env.tokenFor(t, bob), update).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPut, "/blogposts/missing", env.tokenFor(t, admin), update).Code)

	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodDelete, "/blogposts/"+postID, env.tokenFor(t, bob), nil).Code)
	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/blogposts/"+postID, env.tokenFor(t, ada), nil).Code)
}

func TestCoAuthorMayEdit(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ada := env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)
	bob := env.seedAccount(t, "b1", "bob@x.com", "secret", authordomain.RoleAuthor)

	rec := env.do(t, http.MethodPost, "/blogposts", env.tokenFor(t, ada), map[string]any{
		"category": "go",
		"title":    "Joint effort",
		"content":  "Written together.",
		"readTime": map[string]any{"value": 4, "unit": "minutes"},
		"authors":  []string{"b1"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	postID := decodeBody(t, rec)["id"].(string)

	rec = env.do(t, http.MethodPut, "/blogposts/"+postID, env.tokenFor(t, bob), map[string]any{"title": "Edited by Bob"})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestLikesOverHTTP(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ada := env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)
	bob := env.seedAccount(t, "b1", "bob@x.com", "secret", authordomain.RoleAuthor)
	postID := env.createPost(t, env.tokenFor(t, ada))

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPut, "/blogposts/"+postID+"/like", "", nil).Code)

	rec := env.do(t, http.MethodPut, "/blogposts/"+postID+"/like", env.tokenFor(t, bob), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["likes"].([]any), 1)

	rec = env.do(t, http.MethodPut, "/blogposts/"+postID+"/like", env.tokenFor(t, bob), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody(t, rec)["likes"].([]any), 1, "second like is a no-op")

	rec = env.do(t, http.MethodDelete, "/blogposts/"+postID+"/like", env.tokenFor(t, bob), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody(t, rec)["likes"])
}

func TestCommentsOverHTTP(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ada := env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)
	bob := env.seedAccount(t, "b1", "bob@x.com", "secret", authordomain.RoleAuthor)
	postID := env.createPost(t, env.tokenFor(t, ada))

	comment := map[string]any{"name": "Bob", "text": "Great read"}
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/blogposts/"+postID+"/comments", "", comment).Code)

	rec := env.do(t, http.MethodPost, "/blogposts/"+postID+"/comments", env.tokenFor(t, bob), comment)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	commentID := decodeBody(t, rec)["comment"].(map[string]any)["id"].(string)

	// Reading comments is public.
	rec = env.do(t, http.MethodGet, "/blogposts/"+postID+"/comments", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var comments []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	require.Len(t, comments, 1)

	// Moderation belongs to the post's authors or an admin, not the commenter.
	edit := map[string]any{"name": "Bob", "text": "Edited"}
	assert.Equal(t, http.StatusForbidden, env.do(t, http.MethodPut, "/blogposts/"+postID+"/comments/"+commentID, env.tokenFor(t, bob), edit).Code)

	rec = env.do(t, http.MethodPut, "/blogposts/"+postID+"/comments/"+commentID, env.tokenFor(t, ada), edit)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Edited", decodeBody(t, rec)["text"])

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodPut, "/blogposts/"+postID+"/comments/missing", env.tokenFor(t, ada), edit).Code)
	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodDelete, "/blogposts/"+postID+"/comments/"+commentID, env.tokenFor(t, ada), nil).Code)
}

func TestBlogpostPDF(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ada := env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)
	postID := env.createPost(t, env.tokenFor(t, ada))

	rec := env.do(t, http.MethodGet, "/blogposts/"+postID+"/pdf", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, fmt.Sprintf("attachment; filename=bp-%s.pdf", postID), rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"), "response must be a PDF document")

	rec = env.do(t, http.MethodGet, "/blogposts/missing/pdf", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func multipartBody(t *testing.T, field, filename string, content []byte) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestAvatarUpload(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ada := env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)

	body, contentType := multipartBody(t, "avatar", "me.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/authors/a1/avatar", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+env.tokenFor(t, ada))
	rec := httptest.NewRecorder()
	env.server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	author := decodeBody(t, rec)["author"].(map[string]any)
	assert.Equal(t, "https://cdn.test/authors/a1.png", author["avatar"])
	assert.Equal(t, []string{"authors/a1.png"}, env.images.uploads)
}

func TestCoverUploadOwnerOnly(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ada := env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)
	bob := env.seedAccount(t, "b1", "bob@x.com", "secret", authordomain.RoleAuthor)
	postID := env.createPost(t, env.tokenFor(t, ada))

	upload := func(bearer string) *httptest.ResponseRecorder {
		body, contentType := multipartBody(t, "cover", "cover.jpg", []byte("jpg-bytes"))
		req := httptest.NewRequest(http.MethodPost, "/blogposts/"+postID+"/cover", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+bearer)
		rec := httptest.NewRecorder()
		env.server.Router().ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusForbidden, upload(env.tokenFor(t, bob)).Code)

	rec := upload(env.tokenFor(t, ada))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	post := decodeBody(t, rec)["blogpost"].(map[string]any)
	assert.Equal(t, "https://cdn.test/blogposts/"+postID+".jpg", post["cover"])
}

func TestUploadsWithoutStore(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.server.images = nil
	ada := env.seedAccount(t, "a1", "ada@x.com", "secret", authordomain.RoleAuthor)

	body, contentType := multipartBody(t, "avatar", "me.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/authors/a1/avatar", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+env.tokenFor(t, ada))
	rec := httptest.NewRecorder()
	env.server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodDelete, "/authors/register", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "POST", rec.Header().Get("Allow"))
}
