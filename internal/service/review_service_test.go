package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/event-marketplace/internal/domain"
	"github.com/spec-kit/event-marketplace/internal/events"
)

func newReviewFixture() (*ReviewService, *fakeVendors, *recorder) {
	reviews := newFakeReviews()
	vendors := newFakeVendors(approvedVendor("v1", "owner", "music"))
	vendors.reviews = reviews
	rec := newRecorder()
	return NewReviewService(ReviewDependencies{ReviewRepo: reviews, VendorRepo: vendors, Dispatcher: rec}), vendors, rec
}

func TestReviewServiceCreateRecomputesRating(t *testing.T) {
	ctx := context.Background()
	svc, vendors, rec := newReviewFixture()
	alice := user("alice", domain.UserRoleCustomer)
	bob := user("bob", domain.UserRoleCustomer)

	review, err := svc.Create(ctx, alice, ReviewInput{VendorID: "v1", Rating: 4, Comment: " great "})
	require.NoError(t, err)
	assert.Equal(t, "great", review.Comment)
	assert.Equal(t, "Alice", review.UserName)

	_, err = svc.Create(ctx, bob, ReviewInput{VendorID: "v1", Rating: 2})
	require.NoError(t, err)

	v := vendors.byID["v1"]
	assert.Equal(t, 2, v.ReviewCount)
	assert.InDelta(t, 3.0, v.Rating, 0.001)

	assert.Equal(t, []events.EventType{
		events.EventVendorUpdated, events.EventReviewCreated,
		events.EventVendorUpdated, events.EventReviewCreated,
	}, rec.types())
	payload := rec.seen[1].Payload.(events.ReviewCreatedPayload)
	assert.Equal(t, "owner", payload.VendorOwnerID)
	assert.Equal(t, 4, payload.Rating)
}

func TestReviewServiceRules(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newReviewFixture()
	alice := user("alice", domain.UserRoleCustomer)
	owner := user("owner", domain.UserRoleVendor)

	_, err := svc.Create(ctx, alice, ReviewInput{VendorID: "v1", Rating: 6})
	assertCode(t, err, "VALIDATION_FAILED")

	_, err = svc.Create(ctx, alice, ReviewInput{VendorID: "v1", Rating: 0})
	assertCode(t, err, "VALIDATION_FAILED")

	_, err = svc.Create(ctx, owner, ReviewInput{VendorID: "v1", Rating: 5})
	assertCode(t, err, "FORBIDDEN")

	_, err = svc.Create(ctx, alice, ReviewInput{VendorID: "nope", Rating: 5})
	assertCode(t, err, "NOT_FOUND")

	_, err = svc.Create(ctx, alice, ReviewInput{VendorID: "v1", Rating: 5})
	require.NoError(t, err)
	_, err = svc.Create(ctx, alice, ReviewInput{VendorID: "v1", Rating: 3})
	assertCode(t, err, "CONFLICT")
}

func TestReviewServiceUpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc, vendors, _ := newReviewFixture()
	alice := user("alice", domain.UserRoleCustomer)
	bob := user("bob", domain.UserRoleCustomer)
	admin := user("admin", domain.UserRoleAdmin)

	review, err := svc.Create(ctx, alice, ReviewInput{VendorID: "v1", Rating: 5})
	require.NoError(t, err)

	rating := 1
	_, err = svc.Update(ctx, bob, review.ID, &rating, nil)
	assertCode(t, err, "FORBIDDEN")

	updated, err := svc.Update(ctx, alice, review.ID, &rating, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Rating)
	assert.InDelta(t, 1.0, vendors.byID["v1"].Rating, 0.001)

	require.NoError(t, svc.Delete(ctx, admin, review.ID))
	assert.Equal(t, 0, vendors.byID["v1"].ReviewCount)
	assert.Zero(t, vendors.byID["v1"].Rating)
}
