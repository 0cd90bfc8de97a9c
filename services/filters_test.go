package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukalov/radioznb-admin/models"
)

func strPtr(s string) *string { return &s }

func personAt(name string, telegram *string, created time.Time) models.Person {
	return models.Person{
		ID:              uuid.New(),
		Name:            name,
		TelegramAccount: telegram,
		CreatedAt:       created,
	}
}

func day(n int) time.Time {
	return time.Date(2025, 1, n, 0, 0, 0, 0, time.UTC)
}

// ============================================================================
// люди
// ============================================================================

func TestFilterPeopleBothFlagsOffShowsNothing(t *testing.T) {
	people := []models.Person{
		personAt("Аня", strPtr("anya"), day(1)),
		personAt("Боря", nil, day(2)),
	}

	f := DefaultFilterState() // оба флага выключены по умолчанию
	assert.Empty(t, FilterPeople(people, f))
}

func TestFilterPeopleBothFlagsOnShowsAllSorted(t *testing.T) {
	people := []models.Person{
		personAt("Боря", nil, day(2)),
		personAt("Аня", strPtr("anya"), day(1)),
	}

	f := DefaultFilterState()
	f.PeopleWithTelegram = true
	f.PeopleWithoutTelegram = true
	f.SortBy = SortNameAsc

	got := FilterPeople(people, f)
	require.Len(t, got, 2)
	assert.Equal(t, "Аня", got[0].Name)
	assert.Equal(t, "Боря", got[1].Name)
}

func TestFilterPeopleSingleFlagSelectsComplement(t *testing.T) {
	withTg := personAt("Аня", strPtr("anya"), day(1))
	withoutTg := personAt("Боря", nil, day(2))
	people := []models.Person{withTg, withoutTg}

	f := DefaultFilterState()
	f.PeopleWithTelegram = true // только люди с телеграмом

	got := FilterPeople(people, f)
	require.Len(t, got, 1)
	assert.Equal(t, withTg.ID, got[0].ID)

	f = DefaultFilterState()
	f.PeopleWithoutTelegram = true

	got = FilterPeople(people, f)
	require.Len(t, got, 1)
	assert.Equal(t, withoutTg.ID, got[0].ID)
}

func TestFilterPeopleSearchByTelegram(t *testing.T) {
	people := []models.Person{
		personAt("Аня", strPtr("jazzlover"), day(1)),
		personAt("Боря", strPtr("bluesman"), day(2)),
	}

	f := DefaultFilterState()
	f.PeopleWithTelegram = true
	f.PeopleWithoutTelegram = true
	f.SearchQuery = "jazz"

	got := FilterPeople(people, f)
	require.Len(t, got, 1)
	assert.Equal(t, "Аня", got[0].Name)
}

func TestFilterPeopleDoesNotMutateInput(t *testing.T) {
	people := []models.Person{
		personAt("Боря", nil, day(2)),
		personAt("Аня", nil, day(1)),
	}

	f := DefaultFilterState()
	f.PeopleWithTelegram = true
	f.PeopleWithoutTelegram = true
	f.SortBy = SortNameAsc

	_ = FilterPeople(people, f)
	assert.Equal(t, "Боря", people[0].Name, "исходный список не должен меняться")
}

// ============================================================================
// передачи
// ============================================================================

func TestFilterProgramsDirectFlagSemantics(t *testing.T) {
	hostID := uuid.New()
	withHost := models.Program{ID: uuid.New(), Name: "Утро", HostID: &hostID, CreatedAt: day(1)}
	withoutHost := models.Program{ID: uuid.New(), Name: "Вечер", CreatedAt: day(2)}
	programs := []models.Program{withHost, withoutHost}

	// оба выключены — фильтра нет
	f := DefaultFilterState()
	assert.Len(t, FilterPrograms(programs, f), 2)

	// оба включены — фильтра тоже нет
	f.ProgramsWithHost = true
	f.ProgramsWithoutHost = true
	assert.Len(t, FilterPrograms(programs, f), 2)

	// ровно один — остаются только совпадающие
	f = DefaultFilterState()
	f.ProgramsWithHost = true
	got := FilterPrograms(programs, f)
	require.Len(t, got, 1)
	assert.Equal(t, withHost.ID, got[0].ID)

	f = DefaultFilterState()
	f.ProgramsWithoutHost = true
	got = FilterPrograms(programs, f)
	require.Len(t, got, 1)
	assert.Equal(t, withoutHost.ID, got[0].ID)
}

func TestFilterProgramsSearchDescription(t *testing.T) {
	programs := []models.Program{
		{ID: uuid.New(), Name: "Утро", Description: strPtr("передача про джаз"), CreatedAt: day(1)},
		{ID: uuid.New(), Name: "Вечер", CreatedAt: day(2)},
	}

	f := DefaultFilterState()
	f.SearchQuery = "джаз"

	got := FilterPrograms(programs, f)
	require.Len(t, got, 1)
	assert.Equal(t, "Утро", got[0].Name)
}

// ============================================================================
// жанры
// ============================================================================

func TestFilterGenresDateSortFallsBackToName(t *testing.T) {
	genres := []models.Genre{
		{ID: uuid.New(), Name: "рок"},
		{ID: uuid.New(), Name: "блюз"},
		{ID: uuid.New(), Name: "джаз"},
	}

	f := DefaultFilterState() // date-desc, но у жанров даты нет
	got := FilterGenres(genres, f)
	require.Len(t, got, 3)
	assert.Equal(t, "блюз", got[0].Name)
	assert.Equal(t, "джаз", got[1].Name)
	assert.Equal(t, "рок", got[2].Name)
}

// ============================================================================
// записи
// ============================================================================

func recordingItem(title string, typ models.RecordingType, status models.RecordingStatus, released time.Time) RecordingListItem {
	return RecordingListItem{
		Recording: models.Recording{
			ID:           uuid.New(),
			ProgramID:    uuid.New(),
			EpisodeTitle: title,
			Type:         typ,
			Status:       status,
			ReleaseDate:  released,
		},
		GenreIDs: []uuid.UUID{},
	}
}

func TestFilterRecordingsSearchIgnoresEnumValues(t *testing.T) {
	// type=podcast, но ни одно текстовое поле слова "подкаст" не содержит
	item := recordingItem("утренний выпуск", models.TypePodcast, models.StatusPublished, day(1))

	f := DefaultFilterState()
	f.SearchQuery = "подкаст"

	assert.Empty(t, FilterRecordings([]RecordingListItem{item}, f),
		"поиск не должен совпадать со значением типа записи")

	// а по тексту названия — находит
	titled := recordingItem("лучший подкаст недели", models.TypePodcast, models.StatusPublished, day(2))
	got := FilterRecordings([]RecordingListItem{item, titled}, f)
	require.Len(t, got, 1)
	assert.Equal(t, titled.ID, got[0].ID)
}

func TestFilterRecordingsSearchFoldsYo(t *testing.T) {
	item := recordingItem("всё о джазе", models.TypeLive, models.StatusPublished, day(1))

	f := DefaultFilterState()
	f.SearchQuery = "все"

	got := FilterRecordings([]RecordingListItem{item}, f)
	assert.Len(t, got, 1, "ё в полях должна совпадать с е в запросе")
}

func TestFilterRecordingsTypeAndStatus(t *testing.T) {
	live := recordingItem("эфир", models.TypeLive, models.StatusPublished, day(1))
	podcast := recordingItem("выпуск", models.TypePodcast, models.StatusHidden, day(2))
	items := []RecordingListItem{live, podcast}

	f := DefaultFilterState()
	f.RecordingType = "live"
	got := FilterRecordings(items, f)
	require.Len(t, got, 1)
	assert.Equal(t, live.ID, got[0].ID)

	f = DefaultFilterState()
	f.RecordingStatus = "hidden"
	got = FilterRecordings(items, f)
	require.Len(t, got, 1)
	assert.Equal(t, podcast.ID, got[0].ID)

	// "all" не фильтрует
	f = DefaultFilterState()
	assert.Len(t, FilterRecordings(items, f), 2)
}

func TestFilterRecordingsSelectedPrograms(t *testing.T) {
	a := recordingItem("а", models.TypeLive, models.StatusPublished, day(1))
	b := recordingItem("б", models.TypeLive, models.StatusPublished, day(2))

	f := DefaultFilterState()
	f.SelectedPrograms = []uuid.UUID{a.ProgramID}

	got := FilterRecordings([]RecordingListItem{a, b}, f)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}

func TestFilterRecordingsSelectedGenres(t *testing.T) {
	jazz := uuid.New()
	a := recordingItem("а", models.TypeLive, models.StatusPublished, day(1))
	a.GenreIDs = []uuid.UUID{jazz}
	b := recordingItem("б", models.TypeLive, models.StatusPublished, day(2))

	f := DefaultFilterState()
	f.SelectedGenres = []uuid.UUID{jazz}

	got := FilterRecordings([]RecordingListItem{a, b}, f)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)
}

func TestFilterRecordingsStableSortOnEqualDates(t *testing.T) {
	first := recordingItem("первая", models.TypeLive, models.StatusPublished, day(5))
	second := recordingItem("вторая", models.TypeLive, models.StatusPublished, day(5))
	third := recordingItem("третья", models.TypeLive, models.StatusPublished, day(1))

	f := DefaultFilterState()
	f.SortBy = SortDateDesc

	got := FilterRecordings([]RecordingListItem{first, second, third}, f)
	require.Len(t, got, 3)
	// одинаковые даты сохраняют исходный порядок
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)
	assert.Equal(t, third.ID, got[2].ID)
}

// ============================================================================
// состояние фильтров
// ============================================================================

func TestParseFilterStateDefaults(t *testing.T) {
	state := ParseFilterState("")
	assert.Equal(t, SortDateDesc, state.SortBy)
	assert.Equal(t, "all", state.RecordingType)
	assert.Equal(t, "all", state.RecordingStatus)
	assert.NotNil(t, state.SelectedGenres)
	assert.NotNil(t, state.SelectedPrograms)
}

func TestParseFilterStateMergesOverDefaults(t *testing.T) {
	// неизвестные поля игнорируются, отсутствующие остаются дефолтными
	raw := `{"searchQuery":"джаз","sortBy":"name-asc","someFutureField":123}`
	state := ParseFilterState(raw)

	assert.Equal(t, "джаз", state.SearchQuery)
	assert.Equal(t, SortNameAsc, state.SortBy)
	assert.Equal(t, "all", state.RecordingType)
	assert.Empty(t, state.SelectedPrograms)
}

func TestParseFilterStateGarbageFallsBack(t *testing.T) {
	state := ParseFilterState("{broken json")
	assert.Equal(t, DefaultFilterState(), state)
}

func TestSaveAndLoadFilterState(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()

	// до первого сохранения — значения по умолчанию
	state, err := LoadFilterState(db, userID)
	require.NoError(t, err)
	assert.Equal(t, DefaultFilterState(), state)

	state.SearchQuery = "эфир"
	state.RecordingType = "live"
	require.NoError(t, SaveFilterState(db, userID, state))

	loaded, err := LoadFilterState(db, userID)
	require.NoError(t, err)
	assert.Equal(t, "эфир", loaded.SearchQuery)
	assert.Equal(t, "live", loaded.RecordingType)

	// повторное сохранение перезаписывает ту же строку
	state.SearchQuery = ""
	require.NoError(t, SaveFilterState(db, userID, state))
	loaded, err = LoadFilterState(db, userID)
	require.NoError(t, err)
	assert.Equal(t, "", loaded.SearchQuery)
}
