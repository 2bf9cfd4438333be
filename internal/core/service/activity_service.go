package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/platformkit/identity-api/internal/core/ports"
)

// ActivityService persists login activity: the directory's last_login_at
// field plus a short-lived presence marker. It sits behind the dispatcher,
// off the login hot path.
type ActivityService struct {
	users    ports.UserRepository
	presence ports.PresenceTracker
	log      zerolog.Logger
}

func NewActivityService(users ports.UserRepository, presence ports.PresenceTracker, log zerolog.Logger) *ActivityService {
	return &ActivityService{users: users, presence: presence, log: log}
}

// Record updates the directory timestamp and touches the presence marker.
// A presence failure is logged and swallowed; the directory write is the
// one that matters.
func (s *ActivityService) Record(ctx context.Context, activity ports.LoginActivity) error {
	if err := s.users.RecordLogin(ctx, activity.UserID, activity.At); err != nil {
		return err
	}
	if s.presence != nil {
		if err := s.presence.Touch(ctx, activity.UserID, activity.At); err != nil {
			s.log.Warn().Err(err).Str("user_id", activity.UserID).Msg("presence touch failed")
		}
	}
	return nil
}
