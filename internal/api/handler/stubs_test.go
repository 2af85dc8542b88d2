package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/sbworks/marketplace/internal/api/middleware"
	"github.com/sbworks/marketplace/internal/core/domain"
	"github.com/sbworks/marketplace/internal/core/ports"
)

func newTestContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withSession(c echo.Context, s domain.Session) echo.Context {
	c.Set(middleware.SessionKey, s)
	return c
}

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	logoutFn   func(ctx context.Context, s domain.Session) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, session domain.Session) error {
	return s.logoutFn(ctx, session)
}

func (s *stubAuthService) Authenticate(context.Context, string) (domain.Session, error) {
	return domain.Session{}, domain.ErrUnauthorized
}

type stubProfileService struct {
	fetchFn  func(ctx context.Context, userID string) (*domain.FreelancerProfile, error)
	updateFn func(ctx context.Context, s domain.Session, in ports.UpdateProfileInput) (*domain.FreelancerProfile, error)
}

func (s *stubProfileService) FetchProfile(ctx context.Context, userID string) (*domain.FreelancerProfile, error) {
	return s.fetchFn(ctx, userID)
}

func (s *stubProfileService) UpdateProfile(ctx context.Context, session domain.Session, in ports.UpdateProfileInput) (*domain.FreelancerProfile, error) {
	return s.updateFn(ctx, session, in)
}

type stubProjectService struct {
	listFn   func(ctx context.Context, f ports.ProjectFilter) ([]*domain.Project, error)
	getFn    func(ctx context.Context, id string) (*domain.Project, error)
	createFn func(ctx context.Context, s domain.Session, in ports.CreateProjectInput) (*domain.Project, error)
	statusFn func(ctx context.Context, s domain.Session, id string, in ports.UpdateStatusInput) (*domain.Project, error)
}

func (s *stubProjectService) ListProjects(ctx context.Context, f ports.ProjectFilter) ([]*domain.Project, error) {
	return s.listFn(ctx, f)
}

func (s *stubProjectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return s.getFn(ctx, id)
}

func (s *stubProjectService) CreateProject(ctx context.Context, session domain.Session, in ports.CreateProjectInput) (*domain.Project, error) {
	return s.createFn(ctx, session, in)
}

func (s *stubProjectService) UpdateStatus(ctx context.Context, session domain.Session, id string, in ports.UpdateStatusInput) (*domain.Project, error) {
	return s.statusFn(ctx, session, id, in)
}

type stubCompanyService struct {
	filter ports.CompanyFilter
	page   *ports.CompanyPage
	err    error
}

func (s *stubCompanyService) GetCompanies(_ context.Context, f ports.CompanyFilter) (*ports.CompanyPage, error) {
	s.filter = f
	return s.page, s.err
}

func (s *stubCompanyService) TotalCount(context.Context) (int64, error) {
	if s.page == nil {
		return 0, s.err
	}
	return s.page.Count, s.err
}
