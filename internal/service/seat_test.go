package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatService_ResolveScan(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	location, seatCtx, err := f.seats.ResolveScan(ctx, "", tokenC1)
	require.NoError(t, err)

	assert.Equal(t, "C1", location.Seat.SeatNumber)
	assert.Equal(t, "Lab 1", location.Lab.Name)
	assert.Equal(t, canteenMain, location.Canteen.ID)
	assert.NotEmpty(t, seatCtx.SessionID)
	assert.Equal(t, seatC1, seatCtx.SeatID)
	assert.Equal(t, tokenC1, seatCtx.QRToken)

	current, currentLoc, err := f.seats.CurrentSeat(ctx, seatCtx.SessionID)
	require.NoError(t, err)
	assert.Equal(t, seatC1, current.SeatID)
	assert.Equal(t, seatC1, currentLoc.Seat.ID)
}

func TestSeatService_ResolveScan_RebindsExistingSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, first, err := f.seats.ResolveScan(ctx, "", tokenC1)
	require.NoError(t, err)

	_, second, err := f.seats.ResolveScan(ctx, first.SessionID, tokenC2)
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)

	current, _, err := f.seats.CurrentSeat(ctx, first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, seatC2, current.SeatID)
}

func TestSeatService_ResolveScan_NotFound(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
		token uuid.UUID
	}{
		{
			name:  "unknown token",
			setup: func(*fixture) {},
			token: uuid.New(),
		},
		{
			name:  "inactive qr code",
			setup: func(f *fixture) { f.store.setQRActive(tokenC1, false) },
			token: tokenC1,
		},
		{
			name: "inactive canteen",
			setup: func(f *fixture) {
				c := f.store.canteens[canteenMain]
				c.IsActive = false
				f.store.canteens[canteenMain] = c
			},
			token: tokenC1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.setup(f)

			_, _, err := f.seats.ResolveScan(context.Background(), "sid", tt.token)
			assert.ErrorIs(t, err, ErrNotFound)

			_, _, err = f.seats.CurrentSeat(context.Background(), "sid")
			assert.ErrorIs(t, err, ErrSessionExpired)
		})
	}
}

func TestSeatService_CurrentSeat_Expired(t *testing.T) {
	tests := []struct {
		name      string
		sessionID func(f *fixture) string
	}{
		{
			name:      "no session id",
			sessionID: func(*fixture) string { return "" },
		},
		{
			name:      "unknown session",
			sessionID: func(*fixture) string { return "never-scanned" },
		},
		{
			name: "lifetime elapsed",
			sessionID: func(f *fixture) string {
				_, seatCtx, err := f.seats.ResolveScan(context.Background(), "", tokenC1)
				require.NoError(t, err)
				f.seats.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
				return seatCtx.SessionID
			},
		},
		{
			name: "qr code deactivated after scan",
			sessionID: func(f *fixture) string {
				_, seatCtx, err := f.seats.ResolveScan(context.Background(), "", tokenC1)
				require.NoError(t, err)
				f.store.setQRActive(tokenC1, false)
				return seatCtx.SessionID
			},
		},
		{
			name: "qr code rebound to another seat",
			sessionID: func(f *fixture) string {
				_, seatCtx, err := f.seats.ResolveScan(context.Background(), "", tokenC1)
				require.NoError(t, err)
				loc := f.store.locations[tokenC1]
				loc.Seat.ID = seatC2
				f.store.locations[tokenC1] = loc
				return seatCtx.SessionID
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, _, err := f.seats.CurrentSeat(context.Background(), tt.sessionID(f))
			assert.ErrorIs(t, err, ErrSessionExpired)
		})
	}
}

func TestSeatService_ResolveScan_SessionIDMustBeUUID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, supplied := range []string{"", "victim-session", "seat_session:*"} {
		_, seatCtx, err := f.seats.ResolveScan(ctx, supplied, tokenC1)
		require.NoError(t, err)

		assert.NotEqual(t, supplied, seatCtx.SessionID)
		_, err = uuid.Parse(seatCtx.SessionID)
		assert.NoError(t, err)
		assert.False(t, f.sessions.has(supplied))
	}

	existing := uuid.NewString()
	_, seatCtx, err := f.seats.ResolveScan(ctx, existing, tokenC1)
	require.NoError(t, err)
	assert.Equal(t, existing, seatCtx.SessionID)
}

func TestSeatService_CurrentSeat_ClearsStaleSession(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, seatCtx, err := f.seats.ResolveScan(ctx, "", tokenC1)
	require.NoError(t, err)
	require.True(t, f.sessions.has(seatCtx.SessionID))

	f.store.setQRActive(tokenC1, false)

	_, _, err = f.seats.CurrentSeat(ctx, seatCtx.SessionID)
	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.False(t, f.sessions.has(seatCtx.SessionID))

	f.store.setQRActive(tokenC1, true)

	_, _, err = f.seats.CurrentSeat(ctx, seatCtx.SessionID)
	assert.ErrorIs(t, err, ErrSessionExpired)
}
