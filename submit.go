package main

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 30 * time.Second

// sessionCmd resolves the current user before any composer UI renders.
func sessionCmd(c *Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := c.Session(ctx)
		return sessionMsg{user: user, err: err}
	}
}

func loginCmd(c *Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		user, err := c.Login(ctx, username, password)
		return loginResultMsg{user: user, err: err}
	}
}

// usersCmd populates the recipients multi-select. Fire and forget: a
// failure is logged by the client and the composer runs with no recipient
// choices.
func usersCmd(c *Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		users, err := c.Users(ctx)
		return usersLoadedMsg{users: users, err: err}
	}
}

// submitDraft validates the draft and returns the command that issues the
// create call. A nil command with a non-nil error means the gate rejected
// the submission before anything left the process.
func submitDraft(c *Client, d *Draft, inFlight bool) (tea.Cmd, error) {
	if inFlight {
		return nil, ErrSubmitInFlight
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	// Snapshot so edits made while the call is in flight cannot mutate the
	// payload under it.
	payload := *d
	payload.Recipients = append([]string{}, d.Recipients...)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		card, err := c.CreatePostcard(ctx, &payload)
		return submitResultMsg{card: card, err: err}
	}, nil
}

// submitErrorText maps pipeline errors to the inline message shown under
// the form. The draft always survives a failure so the user can retry.
func submitErrorText(err error) string {
	switch {
	case errors.Is(err, ErrEmptyTitle):
		return "Title is required."
	case errors.Is(err, ErrEmptyDescription):
		return "Description is required."
	case errors.Is(err, ErrUnauthorized):
		return "Your session expired. Log in again."
	case errors.Is(err, ErrSubmitInFlight):
		return "Already creating your postcard..."
	case err != nil:
		return "Could not create postcard: " + err.Error()
	}
	return ""
}

func exportCmd(d *Draft, dir string) tea.Cmd {
	// Snapshot for the same reason submitDraft snapshots.
	payload := *d
	return func() tea.Msg {
		path, err := exportPNG(&payload, dir)
		return exportResultMsg{path: path, err: err}
	}
}
