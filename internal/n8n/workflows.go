package n8n

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	kerrors "github.com/PolarWolf314/n8nsync/internal/errors"
	"github.com/PolarWolf314/n8nsync/internal/record"
)

// WorkflowSummary is one element of the workflow list.
type WorkflowSummary struct {
	ID        string
	Name      string
	Active    bool
	UpdatedAt string
}

// Page is one page of the workflow list.
type Page struct {
	Workflows []WorkflowSummary

	// NextCursor is non-empty when more workflows exist.
	NextCursor string
}

// ListWorkflows fetches the first page of up to PageLimit workflows.
func (c *Client) ListWorkflows(ctx context.Context) (*Page, error) {
	return c.listPage(ctx, "")
}

// ListAllWorkflows follows nextCursor until every page has been fetched.
func (c *Client) ListAllWorkflows(ctx context.Context) ([]WorkflowSummary, error) {
	var all []WorkflowSummary
	seen := make(map[string]bool)
	cursor := ""
	for {
		page, err := c.listPage(ctx, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Workflows...)

		if page.NextCursor == "" {
			return all, nil
		}
		if seen[page.NextCursor] {
			return nil, fmt.Errorf("%w: cursor %q returned twice", kerrors.ErrInvalidResponse, page.NextCursor)
		}
		seen[page.NextCursor] = true
		cursor = page.NextCursor
		c.log.Debugf("Following cursor %s after %d workflows", cursor, len(all))
	}
}

func (c *Client) listPage(ctx context.Context, cursor string) (*Page, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(PageLimit))
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	body, err := c.get(ctx, "/workflows", query)
	if err != nil {
		return nil, fmt.Errorf("listing workflows: %w", err)
	}

	items := body
	page := &Page{}
	if body.Kind() == record.Mapping {
		data, ok := body.Get("data")
		if !ok {
			return nil, fmt.Errorf("%w: workflow list has no data field", kerrors.ErrInvalidResponse)
		}
		items = data
		if next, ok := body.Get("nextCursor"); ok {
			page.NextCursor, _ = next.AsString()
		}
	}
	if items.Kind() != record.Sequence {
		return nil, fmt.Errorf("%w: workflow list is a %s, not a sequence", kerrors.ErrInvalidResponse, items.Kind())
	}

	for i, item := range items.Items() {
		s, err := summaryFrom(item)
		if err != nil {
			return nil, fmt.Errorf("%w: workflow list entry %d: %v", kerrors.ErrInvalidResponse, i, err)
		}
		page.Workflows = append(page.Workflows, s)
	}
	return page, nil
}

func summaryFrom(v *record.Value) (WorkflowSummary, error) {
	if v.Kind() != record.Mapping {
		return WorkflowSummary{}, fmt.Errorf("entry is a %s", v.Kind())
	}

	var s WorkflowSummary
	id, _ := v.Get("id")
	switch id.Kind() {
	case record.String:
		s.ID, _ = id.AsString()
	case record.Number:
		n, _ := id.AsNumber()
		s.ID = n.String()
	}
	if s.ID == "" {
		return WorkflowSummary{}, fmt.Errorf("entry has no id")
	}

	if name, ok := v.Get("name"); ok {
		s.Name, _ = name.AsString()
	}
	if active, ok := v.Get("active"); ok {
		s.Active, _ = active.AsBool()
	}
	if updated, ok := v.Get("updatedAt"); ok {
		s.UpdatedAt, _ = updated.AsString()
	}
	return s, nil
}

// GetWorkflow fetches the full definition of workflow id. Both the
// {"data": {...}} envelope and a bare workflow object are accepted.
func (c *Client) GetWorkflow(ctx context.Context, id string) (*record.Value, error) {
	body, err := c.get(ctx, "/workflows/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("fetching workflow %s: %w", id, err)
	}

	wf := body
	if data, ok := body.Get("data"); ok && data.Kind() == record.Mapping && !body.Has("nodes") {
		wf = data
	}
	if wf.Kind() != record.Mapping {
		return nil, fmt.Errorf("fetching workflow %s: %w", id, kerrors.ErrNotAWorkflow)
	}
	return wf, nil
}
