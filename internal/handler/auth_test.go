package handler

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/sysu-ecnc-dev/job-board/backend/internal/domain"
	"github.com/sysu-ecnc-dev/job-board/backend/internal/session"
	"golang.org/x/crypto/bcrypt"
)

func TestSignupMissingFields(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		form url.Values
	}{
		{"缺少用户名", url.Values{"password": {"secret"}, "name": {"测试公司"}}},
		{"缺少密码", url.Values{"username": {"acme"}, "name": {"测试公司"}}},
		{"缺少企业名称", url.Values{"username": {"acme"}, "password": {"secret"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/company/signup", tc.form, nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("期望重新渲染注册页，状态码为 %d", rec.Code)
			}
			if env.users.count() != 0 {
				t.Fatalf("校验失败时不应创建任何账户，实际有 %d 个", env.users.count())
			}
		})
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.createCompany(t, "acme", "secret", "测试公司")

	form := url.Values{"username": {"acme"}, "password": {"other"}, "name": {"另一家公司"}}
	rec := env.do(t, http.MethodPost, "/company/signup", form, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("期望重新渲染注册页，状态码为 %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "该用户名已被注册") {
		t.Fatalf("期望提示用户名重复，实际响应: %s", rec.Body.String())
	}
	if env.users.count() != 1 {
		t.Fatalf("重复注册不应创建新账户，实际有 %d 个", env.users.count())
	}
}

func TestSignupSuccess(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{
		"username": {"acme"},
		"password": {"secret"},
		"name":     {"测试公司"},
		"email":    {"hr@acme.example.com"},
	}
	rec := env.do(t, http.MethodPost, "/company/signup", form, nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("注册成功应重定向，状态码为 %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/company/login" {
		t.Fatalf("应重定向到登录页，实际为 %s", loc)
	}

	user, err := env.users.GetUserByUsername("acme")
	if err != nil {
		t.Fatalf("注册后应能查到账户: %v", err)
	}
	if user.Role != domain.RoleRecruiter {
		t.Fatalf("注册账户的角色应为招聘方，实际为 %s", user.Role)
	}
	if user.PasswordHash == "secret" {
		t.Fatal("密码不应明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")); err != nil {
		t.Fatalf("存储的哈希应能验证原始密码: %v", err)
	}

	if len(env.publisher.messages) != 1 {
		t.Fatalf("留了邮箱的注册应发出一封欢迎邮件，实际 %d 封", len(env.publisher.messages))
	}
	if env.publisher.messages[0].To != "hr@acme.example.com" || env.publisher.messages[0].Type != "welcome" {
		t.Fatalf("欢迎邮件内容不正确: %+v", env.publisher.messages[0])
	}
}

func TestSignupWithoutEmailSkipsMail(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{"username": {"acme"}, "password": {"secret"}, "name": {"测试公司"}}
	rec := env.do(t, http.MethodPost, "/company/signup", form, nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("注册成功应重定向，状态码为 %d", rec.Code)
	}
	if len(env.publisher.messages) != 0 {
		t.Fatalf("没有邮箱时不应投递邮件，实际 %d 封", len(env.publisher.messages))
	}
}

func TestLoginSuccessEstablishesSession(t *testing.T) {
	env := newTestEnv(t)
	env.createCompany(t, "acme", "secret", "测试公司")

	form := url.Values{"username": {"acme"}, "password": {"secret"}}
	rec := env.do(t, http.MethodPost, "/company/login", form, nil)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("登录成功应重定向，状态码为 %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/company/private-company" {
		t.Fatalf("应重定向到私有区域，实际为 %s", loc)
	}

	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, c := range cookies {
		if c.Name == sessionCookieName {
			found = c
		}
	}
	if found == nil {
		t.Fatal("登录成功后应设置会话 cookie")
	}
	if !found.HttpOnly {
		t.Fatal("会话 cookie 应为 http-only")
	}
	if env.sessions.count() != 1 {
		t.Fatalf("登录成功后服务端应有一条会话记录，实际 %d 条", env.sessions.count())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.createCompany(t, "acme", "secret", "测试公司")

	form := url.Values{"username": {"acme"}, "password": {"wrong"}}
	rec := env.do(t, http.MethodPost, "/company/login", form, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("登录失败应重新渲染登录页，状态码为 %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "用户名不存在或密码错误") {
		t.Fatalf("应提示凭证错误，实际响应: %s", rec.Body.String())
	}
	if env.sessions.count() != 0 {
		t.Fatal("登录失败不应建立会话")
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	env := newTestEnv(t)
	user := env.createCompany(t, "acme", "secret", "测试公司")
	cookie := env.loginCookie(t, user)

	rec := env.do(t, http.MethodGet, "/company/logout", nil, cookie)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("登出应重定向，状态码为 %d", rec.Code)
	}
	if env.sessions.count() != 0 {
		t.Fatal("登出后服务端会话记录应被删除")
	}

	// 同一个 cookie 再访问私有区域应被拒绝
	rec = env.do(t, http.MethodGet, "/company/private-company", nil, cookie)
	if !strings.Contains(rec.Body.String(), "访问被拒绝") {
		t.Fatalf("登出后的令牌应被拒绝，实际响应: %s", rec.Body.String())
	}
}

func TestPrivateAreaRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	paths := []string{
		"/company/private-company",
		"/company/private-company/delete?id=1",
		"/company/private-company/edit?id=1",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, path, nil, nil)
			if !strings.Contains(rec.Body.String(), "访问被拒绝") {
				t.Fatalf("未登录访问 %s 应渲染登录页并提示拒绝，实际响应: %s", path, rec.Body.String())
			}
		})
	}

	// 伪造的令牌同样应被拒绝
	rec := env.do(t, http.MethodGet, "/company/private-company", nil,
		&http.Cookie{Name: sessionCookieName, Value: "not-a-real-token"})
	if !strings.Contains(rec.Body.String(), "访问被拒绝") {
		t.Fatalf("伪造令牌应被拒绝，实际响应: %s", rec.Body.String())
	}
}

func TestPrivateAreaRequiresRecruiterRole(t *testing.T) {
	env := newTestEnv(t)
	user := env.createCompany(t, "acme", "secret", "测试公司")

	// 构造一个角色不符的会话
	sessUser := *user
	sessUser.Role = domain.Role("STUDENT")
	cookie := env.loginCookie(t, &sessUser)

	rec := env.do(t, http.MethodGet, "/company/private-company", nil, cookie)
	if !strings.Contains(rec.Body.String(), "没有权限") {
		t.Fatalf("角色不符应提示无权限，实际响应: %s", rec.Body.String())
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	user := env.createCompany(t, "acme", "secret", "测试公司")

	sess := session.NewSession(user)
	ss, err := env.handler.signSessionToken(sess, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("签发令牌失败: %v", err)
	}

	claims, err := env.handler.parseSessionToken(ss)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}
	if claims.ID != sess.ID {
		t.Fatalf("令牌中的会话 ID 不一致: %s != %s", claims.ID, sess.ID)
	}
	if claims.Role != string(domain.RoleRecruiter) {
		t.Fatalf("令牌中的角色不一致: %s", claims.Role)
	}

	// 篡改后的令牌应当解析失败
	tampered := ss + "x"
	if _, err := env.handler.parseSessionToken(tampered); err == nil {
		t.Fatal("篡改后的令牌不应通过校验")
	}
}
