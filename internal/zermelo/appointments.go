package zermelo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	appLog "zermelo-cli/internal/log"
	"zermelo-cli/internal/model"
)

// maxErrorBody caps how much of a failed response is quoted in errors.
const maxErrorBody = 512

type appointmentsResponse struct {
	Response *struct {
		Data *[]model.Appointment `json:"data"`
	} `json:"response"`
}

// FetchAppointments queries today's appointments for the session's user and
// returns them sorted by start time. An empty day yields an empty, non-nil
// slice. Failures are returned as *FetchError; there is no partial result.
func (s *Session) FetchAppointments(ctx context.Context) ([]model.Appointment, error) {
	start, end := DayWindow(s.clock.Now())

	q := url.Values{}
	q.Set("user", "~me")
	q.Set("start", strconv.FormatInt(start, 10))
	q.Set("end", strconv.FormatInt(end, 10))
	q.Set("access_token", s.accessToken)
	q.Set("valid", "true")
	endpoint := s.baseURL + "/appointments?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Err: redactError(err)}
	}
	req.Header.Set("Accept", "application/json")

	appLog.Debug("appointments fetch start", "url", redactURL(endpoint), "start", start, "end", end)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &FetchError{Err: redactError(err)}
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err := fmt.Errorf("unexpected status %s", resp.Status)
		if body := strings.TrimSpace(string(snippet)); body != "" {
			err = fmt.Errorf("unexpected status %s: %s", resp.Status, body)
		}
		appLog.Debug("appointments fetch failed", "err", err, "url", redactURL(endpoint), "status", resp.StatusCode)
		return nil, &FetchError{StatusCode: resp.StatusCode, Err: err}
	}

	var payload appointmentsResponse
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&payload); err != nil {
		return nil, &FetchError{Err: fmt.Errorf("decode response: %w", err)}
	}
	// The body must hold exactly one JSON document.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &FetchError{Err: errors.New("decode response: unexpected data after JSON body")}
	}
	if payload.Response == nil || payload.Response.Data == nil {
		return nil, &FetchError{Err: errors.New("decode response: missing response.data")}
	}

	appointments := *payload.Response.Data
	for _, a := range appointments {
		appLog.Debug("appointment",
			"id", a.ID,
			"instance", a.AppointmentInstance,
			"type", a.Type,
			"valid", a.Valid,
			"cancelled", a.Cancelled,
		)
		if a.End <= a.Start {
			appLog.Debug("appointment ends before it starts", "id", a.ID, "start", a.Start, "end", a.End)
		}
	}

	appLog.Info("appointments fetch success", "count", len(appointments))
	return SortAppointments(appointments), nil
}
