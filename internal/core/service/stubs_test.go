package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sbworks/marketplace/internal/core/domain"
	"github.com/sbworks/marketplace/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	seq     int
	byID    map[string]*domain.User
	deleted []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.seq++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("user-%d", r.seq)
	r.byID[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// ---------------------------------------------------------------------------
// Freelancer profiles
// ---------------------------------------------------------------------------

type stubFreelancerRepo struct {
	mu        sync.Mutex
	seq       int
	byID      map[string]*domain.FreelancerProfile
	createErr error
}

func newStubFreelancerRepo() *stubFreelancerRepo {
	return &stubFreelancerRepo{byID: make(map[string]*domain.FreelancerProfile)}
}

func cloneProfile(p *domain.FreelancerProfile) *domain.FreelancerProfile {
	c := *p
	c.Skills = append([]string{}, p.Skills...)
	c.CurrentProjects = append([]string{}, p.CurrentProjects...)
	c.CompletedProjects = append([]string{}, p.CompletedProjects...)
	return &c
}

func (r *stubFreelancerRepo) Create(_ context.Context, p *domain.FreelancerProfile) (*domain.FreelancerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	c := cloneProfile(p)
	c.ID = fmt.Sprintf("fl-%d", r.seq)
	r.byID[c.ID] = c
	return cloneProfile(c), nil
}

func (r *stubFreelancerRepo) FindByID(_ context.Context, id string) (*domain.FreelancerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *stubFreelancerRepo) FindByUserID(_ context.Context, userID string) (*domain.FreelancerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.byUser(userID)
	if p == nil {
		return nil, domain.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (r *stubFreelancerRepo) byUser(userID string) *domain.FreelancerProfile {
	for _, p := range r.byID {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

func (r *stubFreelancerRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *stubFreelancerRepo) UpdateDetails(_ context.Context, id string, skills []string, description string) (*domain.FreelancerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	p.Skills = append([]string{}, skills...)
	p.Description = description
	return cloneProfile(p), nil
}

func (r *stubFreelancerRepo) AssignProject(_ context.Context, userID, projectID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.byUser(userID)
	if p == nil {
		return domain.ErrProfileNotFound
	}
	p.CurrentProjects = addToSet(p.CurrentProjects, projectID)
	return nil
}

func (r *stubFreelancerRepo) CompleteProject(_ context.Context, userID, projectID string, payout int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.byUser(userID)
	if p == nil {
		return domain.ErrProfileNotFound
	}
	current := p.CurrentProjects[:0]
	for _, id := range p.CurrentProjects {
		if id != projectID {
			current = append(current, id)
		}
	}
	p.CurrentProjects = current
	p.CompletedProjects = addToSet(p.CompletedProjects, projectID)
	p.Funds += payout
	return nil
}

func addToSet(set []string, v string) []string {
	for _, s := range set {
		if s == v {
			return set
		}
	}
	return append(set, v)
}

// ---------------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------------

type stubProjectRepo struct {
	mu   sync.Mutex
	seq  int
	byID map[string]*domain.Project
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{byID: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := *p
	c.ID = fmt.Sprintf("proj-%d", r.seq)
	c.CreatedAt = c.CreatedAt.Add(time.Duration(r.seq) * time.Millisecond)
	r.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	c := *p
	return &c, nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubProjectRepo) List(_ context.Context, f ports.ProjectFilter) ([]*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Project{}
	for _, p := range r.byID {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.ClientID != "" && p.ClientID != f.ClientID {
			continue
		}
		if f.FreelancerID != "" && p.FreelancerID != f.FreelancerID {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.Title), q) && !strings.Contains(strings.ToLower(p.Description), q) {
				continue
			}
		}
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubProjectRepo) UpdateStatus(_ context.Context, id string, from, to domain.ProjectStatus, freelancerID string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	if p.Status != from {
		return nil, domain.ErrInvalidTransition
	}
	p.Status = to
	p.FreelancerID = freelancerID
	c := *p
	return &c, nil
}

// ---------------------------------------------------------------------------
// Transactions, tokens, sessions, events
// ---------------------------------------------------------------------------

// passthroughTx runs the unit of work without atomicity, like a standalone Mongo.
type passthroughTx struct{ calls int }

func (t *passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type stubTokenIssuer struct{}

func (stubTokenIssuer) Issue(user *domain.User) (string, domain.Session, error) {
	s := domain.Session{
		UserID:    user.ID,
		Usertype:  user.Usertype,
		Username:  user.Username,
		TokenID:   "jti-" + user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return "token-" + user.ID, s, nil
}

func (stubTokenIssuer) Parse(raw string) (domain.Session, error) {
	id, ok := strings.CutPrefix(raw, "token-")
	if !ok {
		return domain.Session{}, domain.ErrUnauthorized
	}
	return domain.Session{UserID: id, TokenID: "jti-" + id, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type stubSessionStore struct {
	revoked map[string]time.Time
	err     error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{revoked: make(map[string]time.Time)}
}

func (s *stubSessionStore) Revoke(_ context.Context, tokenID string, until time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.revoked[tokenID] = until
	return nil
}

func (s *stubSessionStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.revoked[tokenID]
	return ok, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

var errBoom = errors.New("boom")
