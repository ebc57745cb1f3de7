package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
)

func TestEventServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	alice := user("alice", domain.UserRoleCustomer)
	bob := user("bob", domain.UserRoleCustomer)
	rec := newRecorder()
	evts := newFakeEvents()
	svc := NewEventService(EventDependencies{EventRepo: evts, VendorRepo: newFakeVendors(), Dispatcher: rec, Clock: clock})

	title := "Wedding"
	_, err := svc.Create(ctx, alice, EventInput{Title: &title})
	assertCode(t, err, "VALIDATION_FAILED")

	date := fixedNow.AddDate(0, 2, 0)
	created, err := svc.Create(ctx, alice, EventInput{Title: &title, EventDate: &date})
	require.NoError(t, err)
	assert.Equal(t, domain.EventStatusPlanning, created.Status)
	assert.Equal(t, []events.EventType{events.EventEventCreated}, rec.types())

	_, err = svc.Get(ctx, bob, created.ID)
	assertCode(t, err, "FORBIDDEN")

	bad := domain.EventStatus("postponed")
	_, err = svc.Update(ctx, alice, created.ID, EventInput{Status: &bad})
	assertCode(t, err, "VALIDATION_FAILED")

	guests := 120
	updated, err := svc.Update(ctx, alice, created.ID, EventInput{GuestCount: &guests})
	require.NoError(t, err)
	assert.Equal(t, 120, updated.GuestCount)

	assertCode(t, svc.Delete(ctx, bob, created.ID), "FORBIDDEN")
	require.NoError(t, svc.Delete(ctx, alice, created.ID))
}

func TestEventServiceUpcoming(t *testing.T) {
	ctx := context.Background()
	alice := user("alice", domain.UserRoleCustomer)
	evts := newFakeEvents(
		&domain.Event{ID: "past", UserID: "alice", EventDate: fixedNow.Add(-time.Hour), Status: domain.EventStatusPlanning},
		&domain.Event{ID: "later", UserID: "alice", EventDate: fixedNow.AddDate(0, 1, 0), Status: domain.EventStatusPlanning},
		&domain.Event{ID: "soon", UserID: "alice", EventDate: fixedNow.Add(24 * time.Hour), Status: domain.EventStatusConfirmed},
		&domain.Event{ID: "cancelled", UserID: "alice", EventDate: fixedNow.Add(48 * time.Hour), Status: domain.EventStatusCancelled},
		&domain.Event{ID: "someone-else", UserID: "bob", EventDate: fixedNow.Add(time.Hour), Status: domain.EventStatusPlanning},
	)
	svc := NewEventService(EventDependencies{EventRepo: evts, VendorRepo: newFakeVendors(), Clock: clock})

	upcoming, err := svc.Upcoming(ctx, alice, "alice")
	require.NoError(t, err)
	ids := make([]string, len(upcoming))
	for i, e := range upcoming {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"soon", "later"}, ids)
}

func TestEventServiceFeaturedVendors(t *testing.T) {
	ctx := context.Background()
	alice := user("alice", domain.UserRoleCustomer)
	music := approvedVendor("music", "o1", "music")
	music.Rating = 5
	catering := approvedVendor("catering", "o2", "wedding")
	catering.Rating = 3
	evts := newFakeEvents(&domain.Event{ID: "e1", UserID: "alice", EventType: "Wedding", EventDate: fixedNow, Status: domain.EventStatusPlanning})
	svc := NewEventService(EventDependencies{EventRepo: evts, VendorRepo: newFakeVendors(music, catering), Clock: clock})

	vendors, err := svc.FeaturedVendors(ctx, alice, "e1")
	require.NoError(t, err)
	assert.Equal(t, []string{"catering", "music"}, vendorIDs(vendors))
}
