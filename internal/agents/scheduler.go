package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/rsavchuk/talentflow/internal/calendar"
	"github.com/rsavchuk/talentflow/internal/logger"
	"github.com/rsavchuk/talentflow/internal/models"
	"github.com/rsavchuk/talentflow/internal/notify"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scheduling defaults. The lookahead window bounds how far ahead
// interviews may be booked.
const (
	defaultLookaheadDays   = 14
	defaultDurationMinutes = 60
)

// SchedulerConfig tunes the scheduling window.
type SchedulerConfig struct {
	LookaheadDays   int
	DurationMinutes int
}

// InterviewScheduler books the earliest open interviewer slot for each
// qualified candidate and sends the invitation. A failure for one
// candidate never aborts scheduling for the rest.
type InterviewScheduler struct {
	calendar calendar.Service
	sender   notify.Sender
	cfg      SchedulerConfig
	logger   *zap.Logger

	// now is replaceable in tests.
	now func() time.Time
}

// NewInterviewScheduler creates the scheduler agent.
func NewInterviewScheduler(cal calendar.Service, sender notify.Sender, cfg SchedulerConfig, logger *zap.Logger) *InterviewScheduler {
	if cfg.LookaheadDays <= 0 {
		cfg.LookaheadDays = defaultLookaheadDays
	}
	if cfg.DurationMinutes <= 0 {
		cfg.DurationMinutes = defaultDurationMinutes
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &InterviewScheduler{
		calendar: cal,
		sender:   sender,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Schedule books one interview per candidate with the given interviewer.
// It returns the successfully scheduled slots; per-candidate failures are
// logged and skipped.
func (s *InterviewScheduler) Schedule(ctx context.Context, candidates []models.RankedCandidate, interviewerEmail string) []models.ScheduledInterview {
	scheduled := make([]models.ScheduledInterview, 0, len(candidates))

	duration := time.Duration(s.cfg.DurationMinutes) * time.Minute

	for _, candidate := range candidates {
		from := s.now()
		to := from.AddDate(0, 0, s.cfg.LookaheadDays)

		slots, err := s.calendar.AvailableSlots(ctx, interviewerEmail, from, to, duration)
		if err != nil {
			s.logger.Error("getting available slots failed",
				zap.String(logger.FieldCandidate, candidate.ID),
				zap.Error(err),
			)
			continue
		}

		if len(slots) == 0 {
			s.logger.Warn("no available slots for candidate",
				zap.String(logger.FieldCandidate, candidate.ID),
				zap.String("candidate_name", candidate.Name),
			)
			continue
		}

		slot := slots[0]

		eventID, err := s.calendar.CreateEvent(ctx, interviewerEmail, calendar.Event{
			Summary:     fmt.Sprintf("Interview with %s", candidate.Name),
			Description: eventDescription(candidate),
			Start:       slot.Start,
			End:         slot.End,
			Attendees: []calendar.Attendee{
				{Email: interviewerEmail},
				{Email: candidate.Email},
			},
			ConferenceRequestID: fmt.Sprintf("interview-%s-%s", candidate.ID, uuid.NewString()),
		})
		if err != nil {
			s.logger.Error("creating calendar event failed",
				zap.String(logger.FieldCandidate, candidate.ID),
				zap.Error(err),
			)
			continue
		}

		// The event exists at this point. A lost invitation email is
		// logged but does not unschedule the interview.
		if err := s.sendInvitation(ctx, candidate, slot, duration); err != nil {
			s.logger.Error("sending invitation email failed",
				zap.String(logger.FieldCandidate, candidate.ID),
				zap.Error(err),
			)
		}

		scheduled = append(scheduled, models.ScheduledInterview{
			CandidateID:     candidate.ID,
			CandidateName:   candidate.Name,
			CandidateEmail:  candidate.Email,
			StartTime:       slot.Start.Format(time.RFC3339),
			EndTime:         slot.End.Format(time.RFC3339),
			CalendarEventID: eventID,
			Status:          "scheduled",
		})

		s.logger.Info("interview scheduled",
			zap.String(logger.FieldCandidate, candidate.ID),
			zap.String("candidate_name", candidate.Name),
			zap.Time("start", slot.Start),
		)
	}

	return scheduled
}

func (s *InterviewScheduler) sendInvitation(ctx context.Context, candidate models.RankedCandidate, slot calendar.Slot, duration time.Duration) error {
	subject := fmt.Sprintf("Interview Invitation - Interview with %s", candidate.Name)

	body := fmt.Sprintf(`Dear %s,

We are pleased to invite you for an interview for the position you applied for.

Interview Details:
Date & Time: %s
Duration: %d minutes

A calendar invitation has been sent to your email. Please accept the invitation to confirm your attendance.

We look forward to speaking with you!

Best regards,
Recruitment Team`,
		candidate.Name,
		slot.Start.Format("Monday, January 2, 2006 at 3:04 PM"),
		int(duration.Minutes()),
	)

	return s.sender.Send(ctx, candidate.Email, subject, body)
}

func eventDescription(candidate models.RankedCandidate) string {
	return fmt.Sprintf(`Interview scheduled with candidate %s

Overall Match Score: %.2f%%
Skills Match: %.2f%%
Cultural Fit: %.2f%%

Candidate Email: %s
Candidate Phone: %s`,
		candidate.Name,
		candidate.OverallScore,
		candidate.SkillsMatchScore,
		candidate.CulturalFitScore,
		candidate.Email,
		candidate.Phone,
	)
}
