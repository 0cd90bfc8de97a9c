package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sukalov/radioznb-admin/models"
)

// setupTestDB поднимает чистую in-memory базу на каждый тест.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Person{},
		&models.Program{},
		&models.Genre{},
		&models.Recording{},
		&models.RecordingGenre{},
		&models.RecordingPerson{},
		&models.UserFilters{},
	))
	return db
}

type fixtures struct {
	program models.Program
	people  []models.Person
	genres  []models.Genre
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()

	f := fixtures{
		program: models.Program{Name: "Утренний Кофе", Slug: "utrenniy-kofe"},
	}
	require.NoError(t, db.Create(&f.program).Error)

	for _, name := range []string{"Аня", "Боря", "Вера"} {
		person := models.Person{Name: name}
		require.NoError(t, db.Create(&person).Error)
		f.people = append(f.people, person)
	}

	for _, name := range []string{"джаз", "блюз"} {
		genre := models.Genre{Name: name}
		require.NoError(t, db.Create(&genre).Error)
		f.genres = append(f.genres, genre)
	}

	return f
}

func validForm(f fixtures) RecordingFormData {
	return RecordingFormData{
		ProgramID:    f.program.ID,
		EpisodeTitle: "выпуск 1",
		Type:         models.TypePodcast,
		ReleaseDate:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:       models.StatusPublished,
		FileURL:      "https://example.com/audio/1.mp3",
		GenreIDs:     []uuid.UUID{f.genres[0].ID, f.genres[1].ID},
		Hosts:        []uuid.UUID{f.people[0].ID},
		Guests:       []uuid.UUID{f.people[1].ID, f.people[2].ID},
	}
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCreateRejectsHostGuestOverlap(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	form := validForm(f)
	form.Guests = append(form.Guests, f.people[0].ID) // тот же человек и ведущий, и гость

	_, err := CreateRecordingWithRelations(db, form)
	require.ErrorIs(t, err, ErrHostGuestOverlap)

	// валидация сработала до любых записей в базу
	assert.EqualValues(t, 0, countRows(t, db, &models.Recording{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.RecordingGenre{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.RecordingPerson{}))
}

func TestUpdateRejectsHostGuestOverlap(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	id, err := CreateRecordingWithRelations(db, validForm(f))
	require.NoError(t, err)

	form := validForm(f)
	form.Hosts = []uuid.UUID{f.people[1].ID}
	form.Guests = []uuid.UUID{f.people[1].ID}

	err = UpdateRecordingWithRelations(db, id, form)
	require.ErrorIs(t, err, ErrHostGuestOverlap)

	// прежние связи не тронуты
	loaded, err := GetRecordingForForm(db, id)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{f.people[0].ID}, loaded.Hosts)
}

func TestCreateThenLoadRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	form := validForm(f)
	id, err := CreateRecordingWithRelations(db, form)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	loaded, err := GetRecordingForForm(db, id)
	require.NoError(t, err)

	assert.Equal(t, form.EpisodeTitle, loaded.Recording.EpisodeTitle)
	assert.Equal(t, form.FileURL, loaded.Recording.FileURL)
	// связи возвращаются как множества, порядок не важен
	assert.ElementsMatch(t, form.GenreIDs, loaded.GenreIDs)
	assert.ElementsMatch(t, form.Hosts, loaded.Hosts)
	assert.ElementsMatch(t, form.Guests, loaded.Guests)
}

func TestCreateWithEmptyRelationsIsValid(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	form := validForm(f)
	form.GenreIDs = nil
	form.Hosts = nil
	form.Guests = nil

	id, err := CreateRecordingWithRelations(db, form)
	require.NoError(t, err)

	loaded, err := GetRecordingForForm(db, id)
	require.NoError(t, err)
	assert.Empty(t, loaded.GenreIDs)
	assert.Empty(t, loaded.Hosts)
	assert.Empty(t, loaded.Guests)
}

func TestUpdateReplacesRelationsEntirely(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	id, err := CreateRecordingWithRelations(db, validForm(f))
	require.NoError(t, err)

	// полная замена: пустой список жанров должен снести обе прежние связи
	form := validForm(f)
	form.GenreIDs = []uuid.UUID{}
	form.Hosts = []uuid.UUID{f.people[2].ID}
	form.Guests = []uuid.UUID{f.people[0].ID} // бывший ведущий становится гостем

	require.NoError(t, UpdateRecordingWithRelations(db, id, form))

	loaded, err := GetRecordingForForm(db, id)
	require.NoError(t, err)
	assert.Empty(t, loaded.GenreIDs)
	assert.ElementsMatch(t, []uuid.UUID{f.people[2].ID}, loaded.Hosts)
	assert.ElementsMatch(t, []uuid.UUID{f.people[0].ID}, loaded.Guests)
}

func TestCreateRollsBackOnMidSequenceFailure(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	// дубль жанра ломает составной ключ на вставке связей —
	// уже вставленная запись должна откатиться вместе с ними
	form := validForm(f)
	form.GenreIDs = []uuid.UUID{f.genres[0].ID, f.genres[0].ID}

	_, err := CreateRecordingWithRelations(db, form)
	require.Error(t, err)

	assert.EqualValues(t, 0, countRows(t, db, &models.Recording{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.RecordingGenre{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.RecordingPerson{}))
}

func TestUpdateRollsBackOnMidSequenceFailure(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	id, err := CreateRecordingWithRelations(db, validForm(f))
	require.NoError(t, err)

	form := validForm(f)
	form.EpisodeTitle = "переименованный выпуск"
	form.GenreIDs = []uuid.UUID{f.genres[1].ID, f.genres[1].ID} // дубль ломает вставку

	err = UpdateRecordingWithRelations(db, id, form)
	require.Error(t, err)

	// откат: ни новое название, ни усечённые связи не видны
	loaded, err := GetRecordingForForm(db, id)
	require.NoError(t, err)
	assert.Equal(t, "выпуск 1", loaded.Recording.EpisodeTitle)
	assert.ElementsMatch(t, []uuid.UUID{f.genres[0].ID, f.genres[1].ID}, loaded.GenreIDs)
}

func TestLoadNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := GetRecordingForForm(db, uuid.New())
	assert.ErrorIs(t, err, ErrRecordingNotFound)
}

func TestDeleteCascadesJunctions(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	id, err := CreateRecordingWithRelations(db, validForm(f))
	require.NoError(t, err)

	require.NoError(t, DeleteRecordingWithRelations(db, id))

	assert.EqualValues(t, 0, countRows(t, db, &models.Recording{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.RecordingGenre{}))
	assert.EqualValues(t, 0, countRows(t, db, &models.RecordingPerson{}))
}

func TestDeleteNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := DeleteRecordingWithRelations(db, uuid.New())
	assert.ErrorIs(t, err, ErrRecordingNotFound)
}
