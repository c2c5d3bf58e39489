package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleService implements Service against the Google Calendar API.
type GoogleService struct {
	service *gcal.Service
	logger  *zap.Logger
}

// NewGoogleService builds a calendar client from OAuth client credentials
// and a previously stored token file.
func NewGoogleService(ctx context.Context, credentialsFile, tokenFile string, logger *zap.Logger) (*GoogleService, error) {
	client, err := oauthClient(ctx, credentialsFile, tokenFile, gcal.CalendarScope)
	if err != nil {
		return nil, err
	}

	service, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &GoogleService{service: service, logger: logger}, nil
}

// oauthClient assembles an authorized HTTP client. The token must already
// exist; the interactive consent flow is handled by a separate setup step.
func oauthClient(ctx context.Context, credentialsFile, tokenFile string, scopes ...string) (*http.Client, error) {
	credentials, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read oauth credentials: %w", err)
	}

	config, err := google.ConfigFromJSON(credentials, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse oauth credentials: %w", err)
	}

	data, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read oauth token: %w", err)
	}

	token := &oauth2.Token{}
	if err := json.Unmarshal(data, token); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	return config.Client(ctx, token), nil
}

// AvailableSlots queries free/busy information and derives open slots of
// the requested duration inside working hours.
func (s *GoogleService) AvailableSlots(ctx context.Context, calendarID string, from, to time.Time, duration time.Duration) ([]Slot, error) {
	req := &gcal.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: calendarID}},
	}

	resp, err := s.service.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("freebusy query: %w", err)
	}

	var busy []Slot
	if cal, ok := resp.Calendars[calendarID]; ok {
		for _, period := range cal.Busy {
			start, err := time.Parse(time.RFC3339, period.Start)
			if err != nil {
				return nil, fmt.Errorf("parse busy start: %w", err)
			}
			end, err := time.Parse(time.RFC3339, period.End)
			if err != nil {
				return nil, fmt.Errorf("parse busy end: %w", err)
			}
			busy = append(busy, Slot{Start: start, End: end})
		}
	}

	slots := openSlots(from, to, duration, busy)

	s.logger.Debug("calendar availability",
		zap.String("calendar_id", calendarID),
		zap.Int("busy_periods", len(busy)),
		zap.Int("open_slots", len(slots)),
	)

	return slots, nil
}

// CreateEvent inserts the event with a video-conference creation request.
func (s *GoogleService) CreateEvent(ctx context.Context, calendarID string, event Event) (string, error) {
	attendees := make([]*gcal.EventAttendee, 0, len(event.Attendees))
	for _, a := range event.Attendees {
		attendees = append(attendees, &gcal.EventAttendee{Email: a.Email})
	}

	entry := &gcal.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start:       &gcal.EventDateTime{DateTime: event.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: event.End.Format(time.RFC3339)},
		Attendees:   attendees,
	}

	if event.ConferenceRequestID != "" {
		entry.ConferenceData = &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId: event.ConferenceRequestID,
			},
		}
	}

	created, err := s.service.Events.Insert(calendarID, entry).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}

	return created.Id, nil
}
