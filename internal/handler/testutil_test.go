package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/auth"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/config"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/session"
	"golang.org/x/crypto/bcrypt"
)

// 内存版的 store 实现，行为对齐 postgres/redis 实现的错误约定

type memUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*domain.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*domain.User)}
}

func (s *memUserStore) GetUserByUsername(username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *user
	return &cp, nil
}

func (s *memUserStore) GetUserByID(id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.ID == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *memUserStore) CreateUser(user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Username]; ok {
		// 和 postgres 唯一约束冲突时一样的错误
		return &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	cp := *user
	s.users[user.Username] = &cp
	return nil
}

func (s *memUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type memOfferStore struct {
	mu     sync.Mutex
	nextID int64
	offers map[int64]*domain.Offer
}

func newMemOfferStore() *memOfferStore {
	return &memOfferStore{offers: make(map[int64]*domain.Offer)}
}

func (s *memOfferStore) CreateOffer(offer *domain.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	offer.ID = s.nextID
	offer.CreatedAt = time.Now()
	cp := *offer
	s.offers[offer.ID] = &cp
	return nil
}

func (s *memOfferStore) GetOffersByCompany(companyID int64) ([]*domain.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	offers := make([]*domain.Offer, 0)
	for _, offer := range s.offers {
		if offer.CompanyID == companyID {
			cp := *offer
			offers = append(offers, &cp)
		}
	}
	return offers, nil
}

func (s *memOfferStore) GetOfferByID(id int64) (*domain.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	offer, ok := s.offers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *offer
	return &cp, nil
}

func (s *memOfferStore) UpdateOffer(offer *domain.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.offers[offer.ID]
	if !ok {
		return sql.ErrNoRows
	}
	stored.Title = offer.Title
	stored.Location = offer.Location
	stored.Study = offer.Study
	stored.Style = offer.Style
	stored.Description = offer.Description
	stored.ContactName = offer.ContactName
	stored.ContactEmail = offer.ContactEmail
	return nil
}

func (s *memOfferStore) DeleteOffer(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.offers, id)
	return nil
}

func (s *memOfferStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.offers)
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*session.Session)}
}

func (s *memSessionStore) Create(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	s.sessions[sess.ID] = &cp
	return nil
}

func (s *memSessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *memSessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memSessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

type recordPublisher struct {
	mu       sync.Mutex
	messages []domain.MailMessage
}

func (p *recordPublisher) Publish(_ context.Context, msg domain.MailMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

type testEnv struct {
	handler   *Handler
	users     *memUserStore
	offers    *memOfferStore
	sessions  *memSessionStore
	publisher *recordPublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret"
	cfg.Session.Expiration = 3600
	cfg.Templates.WebDir = "../../templates/web"

	users := newMemUserStore()
	offers := newMemOfferStore()
	sessions := newMemSessionStore()
	publisher := &recordPublisher{}

	h, err := NewHandler(cfg, users, offers, sessions, auth.NewBcryptVerifier(users), publisher)
	if err != nil {
		t.Fatalf("创建 handler 失败: %v", err)
	}
	h.RegisterRoutes()

	return &testEnv{
		handler:   h,
		users:     users,
		offers:    offers,
		sessions:  sessions,
		publisher: publisher,
	}
}

// createCompany 直接往 store 里写入一个企业账户，绕过注册接口
func (env *testEnv) createCompany(t *testing.T, username, password, companyName string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("生成密码哈希失败: %v", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CompanyName:  companyName,
		Role:         domain.RoleRecruiter,
	}
	if err := env.users.CreateUser(user); err != nil {
		t.Fatalf("插入企业账户失败: %v", err)
	}
	return user
}

// loginCookie 为指定用户建立会话并返回对应的 cookie
func (env *testEnv) loginCookie(t *testing.T, user *domain.User) *http.Cookie {
	t.Helper()

	sess := session.NewSession(user)
	if err := env.sessions.Create(context.Background(), sess); err != nil {
		t.Fatalf("创建会话失败: %v", err)
	}

	ss, err := env.handler.signSessionToken(sess, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("签发会话令牌失败: %v", err)
	}

	return &http.Cookie{Name: sessionCookieName, Value: ss}
}

func (env *testEnv) do(t *testing.T, method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	env.handler.Mux.ServeHTTP(rec, req)
	return rec
}
