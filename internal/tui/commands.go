package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/holonet/internal/domain"
	"github.com/mmcdole/holonet/internal/relation"
	"github.com/mmcdole/holonet/internal/session"
	"github.com/mmcdole/holonet/internal/store"
)

// Command timeouts mirror the HTTP client timeout; a preload walks every page
const (
	fetchTimeout   = 30 * time.Second
	preloadTimeout = 60 * time.Second
)

// Command factories for async operations

// FetchListCmd loads one list page into the store
func FetchListCmd(h store.Handle, page int, search string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		h.FetchItems(ctx, page, search)
		return FetchDoneMsg{Kind: h.Kind()}
	}
}

// PageCmd applies a paging request to the store
func PageCmd(h store.Handle, req domain.TableRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		h.OnRequest(ctx, req)
		return FetchDoneMsg{Kind: h.Kind()}
	}
}

// FetchItemCmd loads one resource into the store's CurrentItem
func FetchItemCmd(h store.Handle, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		h.FetchItemByID(ctx, id)
		return FetchDoneMsg{Kind: h.Kind()}
	}
}

// PreloadCmd loads a sibling store's whole catalog (60s for many pages)
func PreloadCmd(kind domain.Kind, res *relation.Resolver[domain.Resource]) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), preloadTimeout)
		defer cancel()

		return PreloadedMsg{Kind: kind, Count: res.Preload(ctx)}
	}
}

// RecordVisitCmd adds an opened detail page to the history
func RecordVisitCmd(sess *session.Store, ref domain.Ref, name string) tea.Cmd {
	return func() tea.Msg {
		if err := sess.RecordVisit(ref, name); err != nil {
			return ErrMsg{Err: err, Context: "recording visit"}
		}
		return VisitRecordedMsg{Ref: ref}
	}
}

// SaveLocaleCmd persists the locale choice
func SaveLocaleCmd(sess *session.Store, tag string) tea.Cmd {
	return func() tea.Msg {
		if err := sess.SaveLocale(tag); err != nil {
			return ErrMsg{Err: err, Context: "saving locale"}
		}
		return LocaleSavedMsg{Tag: tag}
	}
}

// WaitForChangeCmd waits for the next store notification
func WaitForChangeCmd(ch <-chan domain.Kind) tea.Cmd {
	return func() tea.Msg {
		kind, ok := <-ch
		if !ok {
			return nil
		}
		return StoreChangedMsg{Kind: kind}
	}
}
