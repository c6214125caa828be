// ABOUTME: Onboarding session driving navigation, validation, computation and persistence.
// ABOUTME: Defines the identity and result persister collaborators used on completion.
package anamnesis

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/anamnesis/internal/logging"
	"github.com/harperreed/anamnesis/internal/metabolic"
	"github.com/harperreed/anamnesis/internal/models"
	"github.com/sirupsen/logrus"
)

// IdentityProvider supplies the user a completed assessment belongs to.
type IdentityProvider interface {
	UserID() (string, error)
}

// ResultPersister stores a completed assessment.
type ResultPersister interface {
	Save(ctx context.Context, userID string, answers models.Answers, profile *models.ComputedProfile) error
}

// Calculator turns answers into a profile.
type Calculator interface {
	Compute(answers metabolic.Answers) (*models.ComputedProfile, error)
}

// StaticIdentity is an IdentityProvider with a fixed user ID.
type StaticIdentity string

// UserID returns the fixed ID.
func (s StaticIdentity) UserID() (string, error) {
	if s == "" {
		return "", errors.New("no user id configured")
	}
	return string(s), nil
}

// Session is one onboarding attempt.
type Session struct {
	store     *AnswerStore
	nav       *Navigator
	calc      Calculator
	persister ResultPersister
	identity  IdentityProvider
	log       logrus.FieldLogger

	profile *models.ComputedProfile
	saved   bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithPersister sets where completed assessments are saved.
func WithPersister(p ResultPersister) SessionOption {
	return func(s *Session) { s.persister = p }
}

// WithIdentity sets the user the assessment is attached to.
func WithIdentity(id IdentityProvider) SessionOption {
	return func(s *Session) { s.identity = id }
}

// WithCalculator overrides the default Mifflin-St Jeor calculator.
func WithCalculator(c Calculator) SessionOption {
	return func(s *Session) { s.calc = c }
}

// WithLogger overrides the shared logger.
func WithLogger(l logrus.FieldLogger) SessionOption {
	return func(s *Session) { s.log = l }
}

// NewSession starts an onboarding attempt with an empty store.
func NewSession(schema *models.Schema, opts ...SessionOption) *Session {
	s := &Session{
		store: NewAnswerStore(schema),
		calc:  metabolic.New(),
		log:   logging.Log,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.nav = NewNavigator(schema, s.store)
	return s
}

// Store returns the session's answers for mutation by the caller.
func (s *Session) Store() *AnswerStore {
	return s.store
}

// Current returns the question being shown, or nil when completed.
func (s *Session) Current() *models.Question {
	return s.nav.CurrentStep()
}

// State reports the navigator position.
func (s *Session) State() State {
	return s.nav.State(s.store)
}

// Profile returns the computed profile once the session has completed.
func (s *Session) Profile() *models.ComputedProfile {
	return s.profile
}

// Saved reports whether the completed assessment was handed to the persister.
func (s *Session) Saved() bool {
	return s.saved
}

// Next advances when the current step is valid. An invalid step does not
// move and is reported through State.Missing, not as an error.
//
// Stepping past the last visible question computes the profile and saves
// it. A failed computation reopens the questionnaire on the personal data
// question so the answers can be corrected. A failed save keeps the session
// Completed, and calling Next again retries it.
func (s *Session) Next(ctx context.Context) (State, error) {
	if s.nav.Completed() {
		if s.saved {
			return s.State(), nil
		}
		return s.State(), s.complete(ctx)
	}

	if missing := Missing(s.nav.CurrentStep(), s.store); len(missing) > 0 {
		st := s.State()
		st.Missing = missing
		return st, nil
	}

	st := s.nav.Next(s.store)
	if !st.Completed {
		return st, nil
	}
	return st, s.complete(ctx)
}

// Previous moves back one visible step.
func (s *Session) Previous() State {
	return s.nav.Previous(s.store)
}

func (s *Session) complete(ctx context.Context) error {
	if s.profile == nil {
		if cleared := ClearHidden(s.store); len(cleared) > 0 {
			s.log.WithField("questions", cleared).Debug("dropped answers to hidden questions")
		}
		profile, err := s.calc.Compute(s.store)
		if err != nil {
			entry := s.log.WithError(err)
			var ipe *metabolic.IncompleteProfileError
			if errors.As(err, &ipe) {
				entry = entry.WithField("fields", ipe.Fields)
			}
			entry.Error("metabolic calculation failed")
			s.nav.Reopen(s.store, s.personalDataID())
			return err
		}
		s.profile = profile
	}

	if s.persister == nil {
		s.saved = true
		return nil
	}

	userID := ""
	if s.identity != nil {
		id, err := s.identity.UserID()
		if err != nil {
			return fmt.Errorf("failed to resolve user: %w", err)
		}
		userID = id
	}

	if err := s.persister.Save(ctx, userID, s.store.Snapshot(), s.profile); err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"target":  s.profile.TargetCalories,
	}).Info("assessment saved")
	s.saved = true
	return nil
}

func (s *Session) personalDataID() int {
	if q := s.store.Schema().ByRole(models.RolePersonalData); q != nil {
		return q.ID
	}
	return 0
}
