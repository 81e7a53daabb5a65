package series

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duebook-dev/duebook/internal/dateutil"
	"github.com/duebook-dev/duebook/internal/model"
	"github.com/duebook-dev/duebook/internal/recur"
)

// fakeStore implements Store in memory for testing.
type fakeStore struct {
	series map[string]model.Series
	// failPair makes PutPair fail to exercise the atomicity contract.
	failPair bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{series: make(map[string]model.Series)}
}

func (f *fakeStore) Get(id string) (model.Series, bool, error) {
	s, ok := f.series[id]
	return s, ok, nil
}

func (f *fakeStore) List() ([]model.Series, error) {
	var out []model.Series
	for _, s := range f.series {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStore) Put(s model.Series) error {
	f.series[s.ID] = s
	return nil
}

func (f *fakeStore) PutPair(a, b model.Series) error {
	if f.failPair {
		return fmt.Errorf("simulated write failure")
	}
	f.series[a.ID] = a
	f.series[b.ID] = b
	return nil
}

func (f *fakeStore) Delete(id string) error {
	delete(f.series, id)
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return dateutil.NewDate(y, m, d)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustCreate(t *testing.T, svc *Service, rule model.RecurrenceRule, anchor time.Time) model.Series {
	t.Helper()
	ser, err := svc.Create(CreateParams{
		Title:      "Rent",
		Amount:     dec("-1200.00"),
		AnchorDate: anchor,
		Rule:       rule,
	}, date(2025, 1, 1))
	require.NoError(t, err)
	return ser
}

func TestCreate_ValidatesRule(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	_, err := svc.Create(CreateParams{
		Title:      "Rent",
		Amount:     dec("-1200.00"),
		AnchorDate: date(2025, 6, 1),
		Rule:       model.RecurrenceRule{Kind: model.KindDaily, Interval: 0, End: model.Never()},
	}, date(2025, 1, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rule")

	_, err = svc.Create(CreateParams{
		Amount:     dec("-1200.00"),
		AnchorDate: date(2025, 6, 1),
		Rule:       model.RecurrenceRule{Kind: model.KindDaily, Interval: 1, End: model.Never()},
	}, date(2025, 1, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}

func TestGet_NotFound(t *testing.T) {
	svc := NewService(newFakeStore(), nil)
	_, err := svc.Get("nope")
	assert.ErrorIs(t, err, ErrSeriesNotFound)
}

func TestApplyException_UnknownDateRejected(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	ser := mustCreate(t, svc, model.RecurrenceRule{Kind: model.KindMonthly, Interval: 1, End: model.Never()}, date(2025, 6, 15))

	// June 16 is not an occurrence of a monthly-on-the-15th series.
	_, err := svc.ApplyException(ser.ID, date(2025, 6, 16), model.Exception{Action: model.ExceptionDeleted}, date(2025, 6, 1))
	assert.ErrorIs(t, err, ErrUnknownOccurrenceDate)

	saved := store.series[ser.ID]
	assert.Empty(t, saved.Exceptions, "rejected exception must not be stored")
}

func TestApplyException_UpsertsSingleRecord(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	ser := mustCreate(t, svc, model.RecurrenceRule{Kind: model.KindMonthly, Interval: 1, End: model.Never()}, date(2025, 6, 15))

	moved := date(2025, 7, 18)
	_, err := svc.ApplyException(ser.ID, date(2025, 7, 15), model.Exception{
		Action: model.ExceptionModified,
		Date:   &moved,
	}, date(2025, 6, 1))
	require.NoError(t, err)

	// Editing the same nominal occurrence again targets the same key,
	// even though the visible date moved.
	amount := dec("-900.00")
	updated, err := svc.ApplyException(ser.ID, date(2025, 7, 15), model.Exception{
		Action: model.ExceptionModified,
		Amount: &amount,
	}, date(2025, 6, 2))
	require.NoError(t, err)
	require.Len(t, updated.Exceptions, 1)

	exc, ok := updated.Exception("2025-07-15")
	require.True(t, ok)
	assert.Equal(t, model.ExceptionModified, exc.Action)
}

func TestRemoveException(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	ser := mustCreate(t, svc, model.RecurrenceRule{Kind: model.KindMonthly, Interval: 1, End: model.Never()}, date(2025, 6, 15))

	_, err := svc.ApplyException(ser.ID, date(2025, 7, 15), model.Exception{Action: model.ExceptionDeleted}, date(2025, 6, 1))
	require.NoError(t, err)

	updated, err := svc.RemoveException(ser.ID, date(2025, 7, 15), date(2025, 6, 2))
	require.NoError(t, err)
	assert.Empty(t, updated.Exceptions)

	_, err = svc.RemoveException(ser.ID, date(2025, 7, 15), date(2025, 6, 3))
	assert.ErrorIs(t, err, ErrUnknownOccurrenceDate)
}

type recordingMaterializer struct {
	occs []model.Occurrence
	txns []string
}

func (m *recordingMaterializer) Materialize(occ model.Occurrence, transactionID string) error {
	m.occs = append(m.occs, occ)
	m.txns = append(m.txns, transactionID)
	return nil
}

func TestMarkPaid_Anchor(t *testing.T) {
	store := newFakeStore()
	mat := &recordingMaterializer{}
	svc := NewService(store, mat)
	ser := mustCreate(t, svc, model.RecurrenceRule{Kind: model.KindMonthly, Interval: 1, End: model.Never()}, date(2025, 6, 15))

	updated, err := svc.MarkPaid(ser.ID, date(2025, 6, 15), "txn-1", date(2025, 6, 15))
	require.NoError(t, err)
	assert.True(t, updated.Paid)
	assert.Equal(t, "txn-1", updated.TransactionID)
	assert.Empty(t, updated.Exceptions, "anchor settles on the series record")

	require.Len(t, mat.occs, 1)
	assert.True(t, mat.occs[0].Materialized)
	assert.Equal(t, "txn-1", mat.txns[0])
}

func TestMarkPaid_FutureOccurrenceBecomesException(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	ser := mustCreate(t, svc, model.RecurrenceRule{Kind: model.KindMonthly, Interval: 1, End: model.Never()}, date(2025, 6, 15))

	updated, err := svc.MarkPaid(ser.ID, date(2025, 7, 15), "txn-2", date(2025, 7, 15))
	require.NoError(t, err)
	assert.False(t, updated.Paid, "anchor untouched")

	exc, ok := updated.Exception("2025-07-15")
	require.True(t, ok)
	require.NotNil(t, exc.Paid)
	assert.True(t, *exc.Paid)
	require.NotNil(t, exc.TransactionID)
	assert.Equal(t, "txn-2", *exc.TransactionID)
}

func TestMarkPaid_UnknownDate(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	ser := mustCreate(t, svc, model.RecurrenceRule{Kind: model.KindMonthly, Interval: 1, End: model.Never()}, date(2025, 6, 15))

	_, err := svc.MarkPaid(ser.ID, date(2025, 7, 16), "txn-3", date(2025, 7, 16))
	assert.ErrorIs(t, err, ErrUnknownOccurrenceDate)
}

func TestDelete(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	ser := mustCreate(t, svc, model.RecurrenceRule{Kind: model.KindOnce, Interval: 1, End: model.Never()}, date(2025, 6, 15))

	require.NoError(t, svc.Delete(ser.ID))
	assert.ErrorIs(t, svc.Delete(ser.ID), ErrSeriesNotFound)
}

func visibleDates(t *testing.T, all []model.Series, now time.Time, horizonMonths int) []string {
	t.Helper()
	var keys []string
	for _, ser := range all {
		for _, occ := range recur.Occurrences(ser, now, horizonMonths) {
			keys = append(keys, dateutil.DayKey(occ.ScheduledDate))
		}
	}
	return keys
}

func TestSplit_RejectsDateNotAfterAnchor(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	ser := mustCreate(t, svc, model.RecurrenceRule{Kind: model.KindMonthly, Interval: 1, End: model.Never()}, date(2025, 6, 15))

	_, err := svc.Split(ser.ID, date(2025, 6, 15), SplitParams{}, date(2025, 6, 1))
	assert.ErrorIs(t, err, ErrInvalidSplitDate)

	_, err = svc.Split(ser.ID, date(2025, 5, 1), SplitParams{}, date(2025, 6, 1))
	assert.ErrorIs(t, err, ErrInvalidSplitDate)
}

func TestSplit_ConservesVisibleOccurrences(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	ser := mustCreate(t, svc, model.RecurrenceRule{Kind: model.KindWeekly, Interval: 1, End: model.Never()}, date(2025, 6, 2))

	now := date(2025, 6, 1)
	before := visibleDates(t, []model.Series{ser}, now, 3)

	res, err := svc.Split(ser.ID, date(2025, 7, 14), SplitParams{}, now)
	require.NoError(t, err)

	after := visibleDates(t, []model.Series{res.Terminated, res.Created}, now, 3)
	assert.ElementsMatch(t, before, after, "no date lost, none duplicated")
}

func TestSplit_PartitionsExceptions(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	ser := mustCreate(t, svc, model.RecurrenceRule{Kind: model.KindMonthly, Interval: 1, End: model.Never()}, date(2025, 6, 15))

	_, err := svc.ApplyException(ser.ID, date(2025, 7, 15), model.Exception{Action: model.ExceptionDeleted}, date(2025, 6, 1))
	require.NoError(t, err)
	_, err = svc.ApplyException(ser.ID, date(2025, 9, 15), model.Exception{Action: model.ExceptionDeleted}, date(2025, 6, 1))
	require.NoError(t, err)

	res, err := svc.Split(ser.ID, date(2025, 8, 1), SplitParams{}, date(2025, 6, 2))
	require.NoError(t, err)

	_, kept := res.Terminated.Exception("2025-07-15")
	assert.True(t, kept, "pre-split exception frozen on terminated half")
	_, dropped := res.Terminated.Exception("2025-09-15")
	assert.False(t, dropped)
	assert.Empty(t, res.Created.Exceptions, "forward half starts clean")
}

func TestSplit_TerminatesAndInherits(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	ser := mustCreate(t, svc, model.RecurrenceRule{Kind: model.KindMonthly, Interval: 1, End: model.Never()}, date(2025, 6, 15))

	res, err := svc.Split(ser.ID, date(2025, 8, 1), SplitParams{}, date(2025, 6, 2))
	require.NoError(t, err)

	assert.Equal(t, model.EndOn, res.Terminated.Rule.End.Kind)
	assert.Equal(t, date(2025, 7, 31), res.Terminated.Rule.End.Date)

	assert.Equal(t, date(2025, 8, 1), res.Created.AnchorDate)
	assert.Equal(t, ser.Title, res.Created.Title)
	assert.True(t, res.Created.Amount.Equal(ser.Amount))
	assert.Equal(t, ser.Rule.Kind, res.Created.Rule.Kind)
	assert.NotEqual(t, ser.ID, res.Created.ID)
	assert.False(t, res.Created.Paid)
}

func TestSplit_KeepsEarlierEndCondition(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	ser := mustCreate(t, svc, model.RecurrenceRule{
		Kind: model.KindMonthly, Interval: 1, End: model.OnDate(date(2025, 9, 15)),
	}, date(2025, 6, 15))

	res, err := svc.Split(ser.ID, date(2026, 1, 1), SplitParams{}, date(2025, 6, 2))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 9, 15), res.Terminated.Rule.End.Date, "already ends before the split")
}

func TestSplit_OverridesForwardHalf(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	ser := mustCreate(t, svc, model.RecurrenceRule{Kind: model.KindMonthly, Interval: 1, End: model.Never()}, date(2025, 6, 15))

	title := "Rent (new lease)"
	amount := dec("-1400.00")
	rule := model.RecurrenceRule{Kind: model.KindMonthly, Interval: 2, End: model.Never()}
	res, err := svc.Split(ser.ID, date(2025, 9, 1), SplitParams{Title: &title, Amount: &amount, Rule: &rule}, date(2025, 6, 2))
	require.NoError(t, err)

	assert.Equal(t, title, res.Created.Title)
	assert.True(t, res.Created.Amount.Equal(amount))
	assert.Equal(t, 2, res.Created.Rule.Interval)
}

func TestSplit_AtomicWrite(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil)
	ser := mustCreate(t, svc, model.RecurrenceRule{Kind: model.KindMonthly, Interval: 1, End: model.Never()}, date(2025, 6, 15))

	store.failPair = true
	_, err := svc.Split(ser.ID, date(2025, 8, 1), SplitParams{}, date(2025, 6, 2))
	require.Error(t, err)

	// Original series untouched after the failed write.
	saved := store.series[ser.ID]
	assert.Equal(t, model.EndNever, saved.Rule.End.Kind)
}
