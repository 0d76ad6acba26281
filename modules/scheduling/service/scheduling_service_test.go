package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syndic-api/core/cache"
	"syndic-api/core/errors"
	"syndic-api/core/utils"
	availabilitydto "syndic-api/modules/availability/dto"
	availabilityentity "syndic-api/modules/availability/entity"
	availabilityservice "syndic-api/modules/availability/service"
	interventionentity "syndic-api/modules/intervention/entity"
	notificationservice "syndic-api/modules/notification/service"
	"syndic-api/modules/scheduling/dto"
	"syndic-api/modules/scheduling/entity"
)

// fakeDB satisfies database.IDatabase with transactions reduced to a plain
// callback; the repo fakes ignore the tx handle.
type fakeDB struct{}

func (fakeDB) ExecContext(context.Context, string, ...any) error        { return nil }
func (fakeDB) GetContext(context.Context, any, string, ...any) error    { return nil }
func (fakeDB) SelectContext(context.Context, any, string, ...any) error { return nil }
func (fakeDB) QueryRowContext(context.Context, string, ...any) *sql.Row { return nil }
func (fakeDB) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, nil
}
func (fakeDB) NamedExecContext(context.Context, string, any) (sql.Result, error) {
	return nil, nil
}
func (fakeDB) WithinTx(_ context.Context, fn func(tx *sqlx.Tx) error) error { return fn(nil) }
func (fakeDB) SQLx() *sqlx.DB                                               { return nil }

type fakeSchedulingStore struct {
	result       *entity.MatchingResult
	matchVersion int
}

func (f *fakeSchedulingStore) ClearMatches(context.Context, *sqlx.Tx, uuid.UUID) error {
	f.result = nil
	f.matchVersion = 0
	return nil
}

func (f *fakeSchedulingStore) SaveResult(_ context.Context, _ *sqlx.Tx, _ uuid.UUID, matchVersion int, result *entity.MatchingResult) error {
	f.result = result
	f.matchVersion = matchVersion
	return nil
}

func (f *fakeSchedulingStore) LoadResult(context.Context, uuid.UUID) (*entity.MatchingResult, bool, error) {
	if f.result == nil {
		return nil, false, nil
	}
	// The real store persists matches and conflicts only; suggestions and
	// stats are derived by the caller.
	loaded := &entity.MatchingResult{
		PerfectMatches: f.result.PerfectMatches,
		PartialMatches: f.result.PartialMatches,
		Conflicts:      f.result.Conflicts,
	}
	return loaded, true, nil
}

type fakeInterventionStore struct {
	intervention *interventionentity.Intervention
	participants []interventionentity.Participant
}

func (f *fakeInterventionStore) CreateIntervention(_ context.Context, i *interventionentity.Intervention) (*interventionentity.Intervention, error) {
	return i, nil
}

func (f *fakeInterventionStore) GetByID(_ context.Context, id uuid.UUID) (*interventionentity.Intervention, error) {
	if f.intervention != nil && f.intervention.ID == id {
		return f.intervention, nil
	}
	return nil, nil
}

func (f *fakeInterventionStore) GetByReference(_ context.Context, reference string) (*interventionentity.Intervention, error) {
	if f.intervention != nil && f.intervention.Reference == reference {
		return f.intervention, nil
	}
	return nil, nil
}

func (f *fakeInterventionStore) GetByManagerID(context.Context, uuid.UUID) ([]interventionentity.Intervention, error) {
	return nil, nil
}

func (f *fakeInterventionStore) GetForUpdate(ctx context.Context, _ *sqlx.Tx, id uuid.UUID) (*interventionentity.Intervention, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeInterventionStore) SetMatched(_ context.Context, _ *sqlx.Tx, _ uuid.UUID, matchVersion int) error {
	f.intervention.Status = interventionentity.StateMatched
	f.intervention.MatchVersion = matchVersion
	return nil
}

func (f *fakeInterventionStore) CommitSchedule(_ context.Context, _ *sqlx.Tx, _ uuid.UUID, date, startTime, endTime string, comment *string) error {
	f.intervention.Status = interventionentity.StateScheduled
	f.intervention.ScheduledDate = &date
	f.intervention.ScheduledStart = &startTime
	f.intervention.ScheduledEnd = &endTime
	f.intervention.SchedulingComment = comment
	return nil
}

func (f *fakeInterventionStore) AddParticipant(_ context.Context, p *interventionentity.Participant) error {
	f.participants = append(f.participants, *p)
	return nil
}

func (f *fakeInterventionStore) GetParticipants(context.Context, uuid.UUID) ([]interventionentity.Participant, error) {
	return f.participants, nil
}

func (f *fakeInterventionStore) GetParticipant(_ context.Context, _ uuid.UUID, userID uuid.UUID) (*interventionentity.Participant, error) {
	for i := range f.participants {
		if f.participants[i].UserID == userID {
			return &f.participants[i], nil
		}
	}
	return nil, nil
}

func (f *fakeInterventionStore) RemoveParticipant(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type fakeWindowStore struct {
	byUser map[uuid.UUID][]availabilityentity.AvailabilityWindow
	order  []uuid.UUID
	roster map[uuid.UUID]bool
}

func newFakeWindowStore(roster ...uuid.UUID) *fakeWindowStore {
	tracked := map[uuid.UUID]bool{}
	for _, userID := range roster {
		tracked[userID] = true
	}
	return &fakeWindowStore{
		byUser: map[uuid.UUID][]availabilityentity.AvailabilityWindow{},
		roster: tracked,
	}
}

func (f *fakeWindowStore) ReplaceForUser(_ context.Context, interventionID, userID uuid.UUID, windows []availabilityentity.AvailabilityWindow) error {
	if _, seen := f.byUser[userID]; !seen {
		f.order = append(f.order, userID)
	}
	stored := make([]availabilityentity.AvailabilityWindow, len(windows))
	for i, w := range windows {
		w.ID = uuid.New()
		w.InterventionID = interventionID
		w.UserID = userID
		stored[i] = w
	}
	f.byUser[userID] = stored
	return nil
}

func (f *fakeWindowStore) ListByIntervention(context.Context, uuid.UUID) ([]availabilityentity.AvailabilityWindow, error) {
	var all []availabilityentity.AvailabilityWindow
	for _, userID := range f.order {
		all = append(all, f.byUser[userID]...)
	}
	return all, nil
}

func (f *fakeWindowStore) ListByUser(_ context.Context, _ uuid.UUID, userID uuid.UUID) ([]availabilityentity.AvailabilityWindow, error) {
	return f.byUser[userID], nil
}

// countTracked mirrors the store's roster join: only windows belonging to
// tracked participants count.
func (f *fakeWindowStore) countTracked() int {
	count := 0
	for userID := range f.byUser {
		if f.roster[userID] {
			count++
		}
	}
	return count
}

func (f *fakeWindowStore) CountDistinctUsers(context.Context, uuid.UUID) (int, error) {
	return f.countTracked(), nil
}

func (f *fakeWindowStore) CountDistinctUsersTx(context.Context, *sqlx.Tx, uuid.UUID) (int, error) {
	return f.countTracked(), nil
}

type fakeEnqueuer struct {
	payloads []notificationservice.SlotSelectedPayload
}

func (f *fakeEnqueuer) EnqueueSlotSelected(_ context.Context, payload notificationservice.SlotSelectedPayload) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

// deadCache points at nothing: every operation errors, which the service
// tolerates by design.
func deadCache() *cache.Cache {
	return cache.NewCache(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 10 * time.Millisecond,
		MaxRetries:  -1,
	}))
}

type schedulingFixture struct {
	svc            SchedulingServiceInterface
	interventionID uuid.UUID
	interventions  *fakeInterventionStore
	windows        *fakeWindowStore
	store          *fakeSchedulingStore
	enqueuer       *fakeEnqueuer
	manager        *utils.TokenClaims
	tenant         *utils.TokenClaims
	provider       *utils.TokenClaims
}

func newSchedulingFixture() *schedulingFixture {
	interventionID := uuid.New()
	managerID := uuid.New()
	tenantID := uuid.New()
	providerID := uuid.New()

	interventions := &fakeInterventionStore{
		intervention: &interventionentity.Intervention{
			ID:        interventionID,
			Reference: "leaking-pipe-x7Kp2Qw",
			Title:     "Leaking pipe",
			Building:  "A",
			ManagerID: managerID,
			Status:    interventionentity.StateCollecting,
		},
		participants: []interventionentity.Participant{
			{InterventionID: interventionID, UserID: tenantID, DisplayName: "Alice", Role: interventionentity.RoleTenant},
			{InterventionID: interventionID, UserID: providerID, DisplayName: "Bob", Role: interventionentity.RoleProvider},
		},
	}
	windows := newFakeWindowStore(tenantID, providerID)
	store := &fakeSchedulingStore{}
	enqueuer := &fakeEnqueuer{}
	availSvc := availabilityservice.NewAvailabilityService(windows, interventions)

	svc := NewSchedulingService(fakeDB{}, store, interventions, windows, availSvc, deadCache(), enqueuer)

	return &schedulingFixture{
		svc:            svc,
		interventionID: interventionID,
		interventions:  interventions,
		windows:        windows,
		store:          store,
		enqueuer:       enqueuer,
		manager:        &utils.TokenClaims{UserID: managerID, Role: string(interventionentity.RoleManager)},
		tenant:         &utils.TokenClaims{UserID: tenantID, Role: string(interventionentity.RoleTenant)},
		provider:       &utils.TokenClaims{UserID: providerID, Role: string(interventionentity.RoleProvider)},
	}
}

func (fx *schedulingFixture) submit(t *testing.T, actor *utils.TokenClaims, windows ...availabilitydto.WindowRequest) {
	t.Helper()
	_, appErr := fx.svc.SubmitAvailabilities(context.Background(), fx.interventionID, actor, &availabilitydto.SubmitAvailabilitiesRequest{Windows: windows})
	require.Nil(t, appErr)
}

func TestRunMatchingHappyPath(t *testing.T) {
	fx := newSchedulingFixture()

	fx.submit(t, fx.tenant, availabilitydto.WindowRequest{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"})
	fx.submit(t, fx.provider, availabilitydto.WindowRequest{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"})

	resp, appErr := fx.svc.RunMatching(context.Background(), fx.interventionID, fx.manager)
	require.Nil(t, appErr)

	assert.Equal(t, 1, resp.MatchVersion)
	require.Len(t, resp.Result.PerfectMatches, 1)
	assert.Equal(t, 100.0, resp.Result.PerfectMatches[0].MatchScore)

	assert.Equal(t, interventionentity.StateMatched, fx.interventions.intervention.Status)
	assert.Equal(t, 1, fx.interventions.intervention.MatchVersion)
	assert.Equal(t, 1, fx.store.matchVersion)
}

func TestRunMatchingRerunOverwrites(t *testing.T) {
	fx := newSchedulingFixture()

	fx.submit(t, fx.tenant, availabilitydto.WindowRequest{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"})
	fx.submit(t, fx.provider, availabilitydto.WindowRequest{Date: "2099-07-10", StartTime: "11:00", EndTime: "13:00"})

	_, appErr := fx.svc.RunMatching(context.Background(), fx.interventionID, fx.manager)
	require.Nil(t, appErr)

	fx.submit(t, fx.provider, availabilitydto.WindowRequest{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"})

	resp, appErr := fx.svc.RunMatching(context.Background(), fx.interventionID, fx.manager)
	require.Nil(t, appErr)

	assert.Equal(t, 2, resp.MatchVersion)
	require.Len(t, resp.Result.PerfectMatches, 1)
	assert.Equal(t, "10:00", resp.Result.PerfectMatches[0].StartTime)
	assert.Equal(t, "12:00", resp.Result.PerfectMatches[0].EndTime)
}

func TestRunMatchingForbiddenForNonManager(t *testing.T) {
	fx := newSchedulingFixture()

	_, appErr := fx.svc.RunMatching(context.Background(), fx.interventionID, fx.tenant)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestRunMatchingInsufficientData(t *testing.T) {
	fx := newSchedulingFixture()

	fx.submit(t, fx.tenant, availabilitydto.WindowRequest{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"})

	_, appErr := fx.svc.RunMatching(context.Background(), fx.interventionID, fx.manager)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInsufficientData, appErr.Code)
}

func TestRunMatchingIgnoresUntrackedSubmitters(t *testing.T) {
	fx := newSchedulingFixture()

	// One tracked submitter plus window rows from a user who is not on the
	// roster, e.g. a participant removed after submitting. Those rows must
	// not satisfy the two-submitter gate.
	fx.submit(t, fx.tenant, availabilitydto.WindowRequest{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"})

	err := fx.windows.ReplaceForUser(context.Background(), fx.interventionID, uuid.New(), []availabilityentity.AvailabilityWindow{
		{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"},
	})
	require.NoError(t, err)

	_, appErr := fx.svc.RunMatching(context.Background(), fx.interventionID, fx.manager)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInsufficientData, appErr.Code)
	assert.Equal(t, interventionentity.StateCollecting, fx.interventions.intervention.Status)
}

func TestGetAvailabilityDataExcludesUntrackedWindows(t *testing.T) {
	fx := newSchedulingFixture()

	fx.submit(t, fx.tenant, availabilitydto.WindowRequest{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"})

	err := fx.windows.ReplaceForUser(context.Background(), fx.interventionID, uuid.New(), []availabilityentity.AvailabilityWindow{
		{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"},
		{Date: "2099-07-11", StartTime: "09:00", EndTime: "10:00"},
	})
	require.NoError(t, err)

	data, appErr := fx.svc.GetAvailabilityData(context.Background(), fx.interventionID, fx.tenant)
	require.Nil(t, appErr)

	// Stats and gating reflect the tracked roster only.
	assert.Equal(t, 1, data.Stats.UsersWithAvailabilities)
	assert.Equal(t, 1, data.Stats.TotalAvailabilitySlots)
	assert.False(t, data.ShouldRunMatching)
	assert.Equal(t, string(interventionentity.ActionNeedMoreAvailabilities), data.NextAction)
	assert.Equal(t, string(interventionentity.StateCollecting), data.Intervention.Status)
}

func TestRunMatchingUnknownIntervention(t *testing.T) {
	fx := newSchedulingFixture()

	_, appErr := fx.svc.RunMatching(context.Background(), uuid.New(), fx.manager)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestRunMatchingRejectedWhenScheduled(t *testing.T) {
	fx := newSchedulingFixture()
	fx.interventions.intervention.Status = interventionentity.StateScheduled

	_, appErr := fx.svc.RunMatching(context.Background(), fx.interventionID, fx.manager)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidState, appErr.Code)
}

func scheduleToMatched(t *testing.T, fx *schedulingFixture) {
	t.Helper()
	fx.submit(t, fx.tenant, availabilitydto.WindowRequest{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"})
	fx.submit(t, fx.provider, availabilitydto.WindowRequest{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"})
	_, appErr := fx.svc.RunMatching(context.Background(), fx.interventionID, fx.manager)
	require.Nil(t, appErr)
}

func TestSelectSlotCommitsSchedule(t *testing.T) {
	fx := newSchedulingFixture()
	scheduleToMatched(t, fx)

	resp, appErr := fx.svc.SelectSlot(context.Background(), fx.interventionID, fx.manager, &dto.SelectSlotRequest{
		SelectedSlot: dto.SelectedSlot{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"},
		Comment:      "Morning works for everyone",
	})
	require.Nil(t, appErr)

	assert.Equal(t, string(interventionentity.StateScheduled), resp.Status)
	assert.Equal(t, interventionentity.StateScheduled, fx.interventions.intervention.Status)
	require.NotNil(t, fx.interventions.intervention.ScheduledDate)
	assert.Equal(t, "2099-07-10", *fx.interventions.intervention.ScheduledDate)
	require.NotNil(t, fx.interventions.intervention.SchedulingComment)
	assert.Equal(t, "Morning works for everyone", *fx.interventions.intervention.SchedulingComment)

	require.Len(t, fx.enqueuer.payloads, 1)
	payload := fx.enqueuer.payloads[0]
	assert.Equal(t, fx.interventionID.String(), payload.InterventionID)
	assert.Equal(t, "10:00", payload.StartTime)
	assert.Len(t, payload.ParticipantIDs, 2)
}

func TestSelectSlotNormalizesSeconds(t *testing.T) {
	fx := newSchedulingFixture()
	scheduleToMatched(t, fx)

	resp, appErr := fx.svc.SelectSlot(context.Background(), fx.interventionID, fx.manager, &dto.SelectSlotRequest{
		SelectedSlot: dto.SelectedSlot{Date: "2099-07-10", StartTime: "10:00:00", EndTime: "11:30:00"},
	})
	require.Nil(t, appErr)
	assert.Equal(t, "10:00", resp.SelectedSlot.StartTime)
	assert.Equal(t, "11:30", resp.SelectedSlot.EndTime)
}

func TestSelectSlotAllowsManualOverride(t *testing.T) {
	fx := newSchedulingFixture()
	scheduleToMatched(t, fx)

	// A slot outside the computed matches is still a valid commit.
	resp, appErr := fx.svc.SelectSlot(context.Background(), fx.interventionID, fx.manager, &dto.SelectSlotRequest{
		SelectedSlot: dto.SelectedSlot{Date: "2099-08-01", StartTime: "08:00", EndTime: "09:00"},
	})
	require.Nil(t, appErr)
	assert.Equal(t, "2099-08-01", resp.SelectedSlot.Date)
}

func TestSelectSlotForbiddenForNonManager(t *testing.T) {
	fx := newSchedulingFixture()
	scheduleToMatched(t, fx)

	_, appErr := fx.svc.SelectSlot(context.Background(), fx.interventionID, fx.provider, &dto.SelectSlotRequest{
		SelectedSlot: dto.SelectedSlot{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"},
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestSelectSlotRequiresMatchedState(t *testing.T) {
	fx := newSchedulingFixture()

	_, appErr := fx.svc.SelectSlot(context.Background(), fx.interventionID, fx.manager, &dto.SelectSlotRequest{
		SelectedSlot: dto.SelectedSlot{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"},
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidState, appErr.Code)
}

func TestSelectSlotRejectsDoubleCommit(t *testing.T) {
	fx := newSchedulingFixture()
	scheduleToMatched(t, fx)

	_, appErr := fx.svc.SelectSlot(context.Background(), fx.interventionID, fx.manager, &dto.SelectSlotRequest{
		SelectedSlot: dto.SelectedSlot{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"},
	})
	require.Nil(t, appErr)

	_, appErr = fx.svc.SelectSlot(context.Background(), fx.interventionID, fx.manager, &dto.SelectSlotRequest{
		SelectedSlot: dto.SelectedSlot{Date: "2099-07-11", StartTime: "10:00", EndTime: "12:00"},
	})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidState, appErr.Code)
	assert.Len(t, fx.enqueuer.payloads, 1)
}

func TestSelectSlotRejectsInvalidSlot(t *testing.T) {
	fx := newSchedulingFixture()
	scheduleToMatched(t, fx)

	cases := []dto.SelectedSlot{
		{Date: "07/10/2099", StartTime: "10:00", EndTime: "12:00"},
		{Date: "2099-07-10", StartTime: "12:00", EndTime: "10:00"},
		{Date: "2099-07-10", StartTime: "10:00", EndTime: "10:00"},
		{Date: "2099-07-10", StartTime: "banana", EndTime: "12:00"},
	}
	for _, slot := range cases {
		_, appErr := fx.svc.SelectSlot(context.Background(), fx.interventionID, fx.manager, &dto.SelectSlotRequest{SelectedSlot: slot})
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
	}
}

func TestGetAvailabilityDataFlags(t *testing.T) {
	fx := newSchedulingFixture()

	data, appErr := fx.svc.GetAvailabilityData(context.Background(), fx.interventionID, fx.tenant)
	require.Nil(t, appErr)
	assert.False(t, data.ShouldRunMatching)
	assert.False(t, data.CanSelectSlot)
	assert.Equal(t, string(interventionentity.ActionNeedMoreAvailabilities), data.NextAction)
	assert.Equal(t, string(interventionentity.StateCollecting), data.Intervention.Status)

	fx.submit(t, fx.tenant, availabilitydto.WindowRequest{Date: "2099-07-10", StartTime: "10:00", EndTime: "12:00"})
	fx.submit(t, fx.provider, availabilitydto.WindowRequest{Date: "2099-07-10", StartTime: "11:00", EndTime: "13:00"})

	data, appErr = fx.svc.GetAvailabilityData(context.Background(), fx.interventionID, fx.tenant)
	require.Nil(t, appErr)
	assert.True(t, data.ShouldRunMatching)
	assert.Equal(t, string(interventionentity.ActionRunMatching), data.NextAction)
	// The derived state surfaces even though the row still stores collecting.
	assert.Equal(t, string(interventionentity.StateReadyToMatch), data.Intervention.Status)
	assert.Equal(t, 2, data.Stats.UsersWithAvailabilities)
	assert.Equal(t, 2, data.Stats.TotalAvailabilitySlots)

	// MyAvailabilities carries only the actor's windows.
	require.Len(t, data.MyAvailabilities, 1)
	require.Len(t, data.Participants, 2)
}

func TestGetAvailabilityDataAfterMatchingReloadsResult(t *testing.T) {
	fx := newSchedulingFixture()
	scheduleToMatched(t, fx)

	data, appErr := fx.svc.GetAvailabilityData(context.Background(), fx.interventionID, fx.manager)
	require.Nil(t, appErr)

	assert.True(t, data.CanSelectSlot)
	assert.Equal(t, string(interventionentity.ActionSelectSlot), data.NextAction)
	require.NotNil(t, data.Matching)
	require.Len(t, data.Matching.PerfectMatches, 1)
	assert.Equal(t, 100.0, data.Matching.Stats.BestMatchScore)
	assert.Equal(t, 100.0, data.Stats.BestMatchScore)
}

func TestGetAvailabilityDataForbiddenForOutsider(t *testing.T) {
	fx := newSchedulingFixture()

	outsider := &utils.TokenClaims{UserID: uuid.New(), Role: string(interventionentity.RoleTenant)}
	_, appErr := fx.svc.GetAvailabilityData(context.Background(), fx.interventionID, outsider)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestGetAvailabilityDataUnknownIntervention(t *testing.T) {
	fx := newSchedulingFixture()

	_, appErr := fx.svc.GetAvailabilityData(context.Background(), uuid.New(), fx.manager)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrNotFound, appErr.Code)
}
