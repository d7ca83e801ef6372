package external

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oncorisk-client/internal/domain"
)

// CareTeamStore reads profile records and maintains per-doctor pending-report
// counters in the shared document store. Profiles live as hashes keyed
// "profile:<uid>"; the pending_reports field is a plain integer counter.
type CareTeamStore struct {
	redis *redis.Client
}

// NewCareTeamStore connects to the configured store and verifies the
// connection before returning.
func NewCareTeamStore(config domain.CareTeamConfig) (*CareTeamStore, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse care-team store URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to care-team store: %w", err)
	}

	return &CareTeamStore{redis: client}, nil
}

func profileKey(uid string) string {
	return "profile:" + uid
}

// IncrementPendingReports bumps the doctor's pending-reports counter by one.
func (s *CareTeamStore) IncrementPendingReports(ctx context.Context, doctorID string) error {
	if doctorID == "" {
		return fmt.Errorf("doctor id is required")
	}
	if err := s.redis.HIncrBy(ctx, profileKey(doctorID), "pending_reports", 1).Err(); err != nil {
		return fmt.Errorf("failed to increment pending reports for %s: %w", doctorID, err)
	}
	return nil
}

// GetProfile reads a user profile record by uid.
func (s *CareTeamStore) GetProfile(ctx context.Context, uid string) (*domain.UserProfile, error) {
	fields, err := s.redis.HGetAll(ctx, profileKey(uid)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", uid, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("profile %s not found", uid)
	}

	return &domain.UserProfile{
		UID:            fields["uid"],
		Email:          fields["email"],
		DisplayName:    fields["display_name"],
		Role:           fields["role"],
		LinkedDoctorID: fields["linked_doctor_id"],
	}, nil
}

// Close releases the underlying connection pool.
func (s *CareTeamStore) Close() error {
	return s.redis.Close()
}
