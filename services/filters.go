package services

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sukalov/radioznb-admin/models"
)

type SortOption string

const (
	SortNameAsc  SortOption = "name-asc"
	SortNameDesc SortOption = "name-desc"
	SortDateAsc  SortOption = "date-asc"
	SortDateDesc SortOption = "date-desc"
)

// FilterState — общее состояние фильтров всех списков админки.
// Сериализуется в JSON как единое целое: одна строка на пользователя.
type FilterState struct {
	SearchQuery string     `json:"searchQuery"`
	SortBy      SortOption `json:"sortBy"`

	ProgramsWithHost    bool `json:"programsWithHost"`
	ProgramsWithoutHost bool `json:"programsWithoutHost"`

	PeopleWithTelegram    bool `json:"peopleWithTelegram"`
	PeopleWithoutTelegram bool `json:"peopleWithoutTelegram"`

	RecordingType    string      `json:"recordingType"`   // all | live | podcast
	RecordingStatus  string      `json:"recordingStatus"` // all | published | hidden
	SelectedGenres   []uuid.UUID `json:"selectedGenres"`
	SelectedPrograms []uuid.UUID `json:"selectedPrograms"`
}

func DefaultFilterState() FilterState {
	return FilterState{
		SearchQuery:           "",
		SortBy:                SortDateDesc,
		ProgramsWithHost:      false,
		ProgramsWithoutHost:   false,
		PeopleWithTelegram:    false,
		PeopleWithoutTelegram: false,
		RecordingType:         "all",
		RecordingStatus:       "all",
		SelectedGenres:        []uuid.UUID{},
		SelectedPrograms:      []uuid.UUID{},
	}
}

// ParseFilterState разбирает сохранённый JSON поверх значений по умолчанию:
// неизвестные поля игнорируются, отсутствующие остаются дефолтными, так что
// старое сохранённое состояние переживает эволюцию схемы.
func ParseFilterState(raw string) FilterState {
	state := DefaultFilterState()
	if raw == "" {
		return state
	}
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return DefaultFilterState()
	}
	if state.SelectedGenres == nil {
		state.SelectedGenres = []uuid.UUID{}
	}
	if state.SelectedPrograms == nil {
		state.SelectedPrograms = []uuid.UUID{}
	}
	return state
}

// LoadFilterState читает состояние фильтров пользователя из базы.
// Отсутствие строки — не ошибка, возвращаются значения по умолчанию.
func LoadFilterState(db *gorm.DB, userID uuid.UUID) (FilterState, error) {
	var row models.UserFilters
	if err := db.First(&row, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultFilterState(), nil
		}
		return DefaultFilterState(), err
	}
	return ParseFilterState(row.State), nil
}

func SaveFilterState(db *gorm.DB, userID uuid.UUID, state FilterState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	row := models.UserFilters{UserID: userID, State: string(raw)}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
	}).Create(&row).Error
}

// ============================================================================
// поиск
// ============================================================================

func containsCyrillic(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cyrillic, r) {
			return true
		}
	}
	return false
}

// normalizeSearch приводит строку к виду для сравнения: нижний регистр,
// "ё" складывается в "е", а кириллический текст сравнивается только по
// кириллическим буквам. Запрос и поля должны нормализоваться одинаково,
// иначе результаты поиска разойдутся с тем, что видит пользователь.
func normalizeSearch(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "ё", "е")
	if !containsCyrillic(s) {
		return strings.TrimSpace(s)
	}
	var b strings.Builder
	for _, r := range s {
		if unicode.Is(unicode.Cyrillic, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func matchesSearch(query string, fields ...string) bool {
	nq := normalizeSearch(query)
	if nq == "" {
		return true
	}
	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(normalizeSearch(field), nq) {
			return true
		}
	}
	return false
}

// ============================================================================
// сортировка
// ============================================================================

// Коллатор держит внутренние буферы и не потокобезопасен,
// поэтому на каждую сортировку создаётся свой.
func newNameComparator() func(a, b string, desc bool) bool {
	col := collate.New(language.Russian)
	return func(a, b string, desc bool) bool {
		cmp := col.CompareString(a, b)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	}
}

func compareDates(a, b time.Time, desc bool) bool {
	if desc {
		return a.After(b)
	}
	return a.Before(b)
}

// ============================================================================
// люди
// ============================================================================

// FilterPeople применяет поиск, флаги телеграма и сортировку к списку людей.
// Исходный срез не изменяется.
//
// Семантика пары флагов инвертированная и сохранена из исходной системы:
// оба включены — показываем всех, включён один — показываем дополнение
// к выключенному, оба выключены — пустой список.
func FilterPeople(people []models.Person, f FilterState) []models.Person {
	result := make([]models.Person, 0, len(people))

	for _, p := range people {
		telegram := ""
		if p.TelegramAccount != nil {
			telegram = *p.TelegramAccount
		}
		if !matchesSearch(f.SearchQuery, p.Name, telegram) {
			continue
		}

		hasTelegram := telegram != ""
		if hasTelegram && !f.PeopleWithTelegram {
			continue
		}
		if !hasTelegram && !f.PeopleWithoutTelegram {
			continue
		}

		result = append(result, p)
	}

	sortPeople(result, f.SortBy)
	return result
}

func sortPeople(people []models.Person, sortBy SortOption) {
	compareNames := newNameComparator()
	sort.SliceStable(people, func(i, j int) bool {
		switch sortBy {
		case SortNameAsc:
			return compareNames(people[i].Name, people[j].Name, false)
		case SortNameDesc:
			return compareNames(people[i].Name, people[j].Name, true)
		case SortDateAsc:
			return compareDates(people[i].CreatedAt, people[j].CreatedAt, false)
		default:
			return compareDates(people[i].CreatedAt, people[j].CreatedAt, true)
		}
	})
}

// ============================================================================
// передачи
// ============================================================================

// FilterPrograms: здесь, в отличие от людей, семантика флагов прямая —
// оба включены или оба выключены означает "без фильтра по ведущему".
func FilterPrograms(programs []models.Program, f FilterState) []models.Program {
	result := make([]models.Program, 0, len(programs))

	hostFilterActive := f.ProgramsWithHost != f.ProgramsWithoutHost

	for _, p := range programs {
		description := ""
		if p.Description != nil {
			description = *p.Description
		}
		if !matchesSearch(f.SearchQuery, p.Name, description) {
			continue
		}

		if hostFilterActive {
			hasHost := p.HostID != nil
			if f.ProgramsWithHost && !hasHost {
				continue
			}
			if f.ProgramsWithoutHost && hasHost {
				continue
			}
		}

		result = append(result, p)
	}

	sortPrograms(result, f.SortBy)
	return result
}

func sortPrograms(programs []models.Program, sortBy SortOption) {
	compareNames := newNameComparator()
	sort.SliceStable(programs, func(i, j int) bool {
		switch sortBy {
		case SortNameAsc:
			return compareNames(programs[i].Name, programs[j].Name, false)
		case SortNameDesc:
			return compareNames(programs[i].Name, programs[j].Name, true)
		case SortDateAsc:
			return compareDates(programs[i].CreatedAt, programs[j].CreatedAt, false)
		default:
			return compareDates(programs[i].CreatedAt, programs[j].CreatedAt, true)
		}
	})
}

// ============================================================================
// жанры
// ============================================================================

// FilterGenres: у жанров нет ни даты для сортировки, ни категориальных
// фильтров — только поиск и сортировка по имени.
func FilterGenres(genres []models.Genre, f FilterState) []models.Genre {
	result := make([]models.Genre, 0, len(genres))

	for _, g := range genres {
		if !matchesSearch(f.SearchQuery, g.Name) {
			continue
		}
		result = append(result, g)
	}

	compareNames := newNameComparator()
	sort.SliceStable(result, func(i, j int) bool {
		if f.SortBy == SortNameDesc {
			return compareNames(result[i].Name, result[j].Name, true)
		}
		// date-asc и date-desc падают в имя по возрастанию
		return compareNames(result[i].Name, result[j].Name, false)
	})
	return result
}

// ============================================================================
// записи
// ============================================================================

// RecordingListItem — строка списка записей: сама запись плюс данные,
// собранные по связям (название передачи, имена людей, ид жанров).
type RecordingListItem struct {
	models.Recording
	ProgramName string      `json:"program_name"`
	PeopleNames string      `json:"people_names"`
	GenreIDs    []uuid.UUID `json:"genre_ids"`
}

// FilterRecordings: поиск идёт только по текстовым полям (название выпуска,
// описание, название передачи, ключевые слова) — значения type/status
// никогда не участвуют в поиске, они фильтруются отдельными проходами
// с сигнальным значением "all".
func FilterRecordings(items []RecordingListItem, f FilterState) []RecordingListItem {
	selectedPrograms := make(map[uuid.UUID]struct{}, len(f.SelectedPrograms))
	for _, id := range f.SelectedPrograms {
		selectedPrograms[id] = struct{}{}
	}
	selectedGenres := make(map[uuid.UUID]struct{}, len(f.SelectedGenres))
	for _, id := range f.SelectedGenres {
		selectedGenres[id] = struct{}{}
	}

	result := make([]RecordingListItem, 0, len(items))

	for _, item := range items {
		description := ""
		if item.Description != nil {
			description = *item.Description
		}
		keywords := ""
		if item.Keywords != nil {
			keywords = *item.Keywords
		}
		if !matchesSearch(f.SearchQuery, item.EpisodeTitle, description, item.ProgramName, keywords) {
			continue
		}

		if f.RecordingType != "" && f.RecordingType != "all" && string(item.Type) != f.RecordingType {
			continue
		}
		if f.RecordingStatus != "" && f.RecordingStatus != "all" && string(item.Status) != f.RecordingStatus {
			continue
		}

		if len(selectedPrograms) > 0 {
			if _, ok := selectedPrograms[item.ProgramID]; !ok {
				continue
			}
		}

		if len(selectedGenres) > 0 {
			found := false
			for _, genreID := range item.GenreIDs {
				if _, ok := selectedGenres[genreID]; ok {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}

		result = append(result, item)
	}

	compareNames := newNameComparator()
	sort.SliceStable(result, func(i, j int) bool {
		switch f.SortBy {
		case SortNameAsc:
			return compareNames(result[i].EpisodeTitle, result[j].EpisodeTitle, false)
		case SortNameDesc:
			return compareNames(result[i].EpisodeTitle, result[j].EpisodeTitle, true)
		case SortDateAsc:
			return compareDates(result[i].ReleaseDate, result[j].ReleaseDate, false)
		default:
			return compareDates(result[i].ReleaseDate, result[j].ReleaseDate, true)
		}
	})
	return result
}
