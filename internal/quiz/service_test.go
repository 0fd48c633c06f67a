package quiz

import (
	"fmt"
	"strings"
	"testing"

	"ceyquest-server/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Subject{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizAttempt{},
		&models.XPRecord{},
	))
	return db
}

func seedQuiz(t *testing.T, db *gorm.DB, title string) *models.Quiz {
	t.Helper()
	quiz := &models.Quiz{SubjectID: 1, Title: title, IsActive: true, TotalQuestions: 10}
	require.NoError(t, db.Create(quiz).Error)
	return quiz
}

func seedUserWithProfile(t *testing.T, db *gorm.DB, email string, grade int) *models.User {
	t.Helper()
	user := &models.User{Email: email, HashedPassword: "x", IsActive: true}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Profile{
		UserID: user.ID,
		Name:   "Test Student",
		Grade:  grade,
	}).Error)
	return user
}

func TestSubmitAttemptCreditsXP(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	user := seedUserWithProfile(t, db, "student@example.com", 10)
	qz := seedQuiz(t, db, "Algebra Basics")

	attempt, err := service.SubmitAttempt(user.ID, qz.ID, AttemptInput{
		Score:          9,
		TotalQuestions: 10,
		CorrectAnswers: 9,
		TimeTaken:      120,
	})
	require.NoError(t, err)
	assert.NotZero(t, attempt.ID)
	assert.Equal(t, 9, attempt.Score)

	var attemptCount int64
	require.NoError(t, db.Model(&models.QuizAttempt{}).Where("user_id = ?", user.ID).Count(&attemptCount).Error)
	assert.EqualValues(t, 1, attemptCount)

	var record models.XPRecord
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&record).Error)
	assert.Equal(t, 100, record.XPAmount)
	assert.Equal(t, "quiz", record.Source)
	assert.Equal(t, "Completed quiz: Algebra Basics", record.Description)

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, 100, profile.TotalXP)
}

func TestSubmitAttemptDoesNotTouchStreaks(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	user := seedUserWithProfile(t, db, "student@example.com", 10)
	require.NoError(t, db.Model(&models.Profile{}).
		Where("user_id = ?", user.ID).
		Updates(map[string]interface{}{"current_streak": 3, "longest_streak": 7}).Error)
	qz := seedQuiz(t, db, "Chemistry")

	_, err := service.SubmitAttempt(user.ID, qz.ID, AttemptInput{Score: 10, TotalQuestions: 10, CorrectAnswers: 10})
	require.NoError(t, err)

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, 3, profile.CurrentStreak)
	assert.Equal(t, 7, profile.LongestStreak)
}

func TestSubmitAttemptUnknownQuiz(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	user := seedUserWithProfile(t, db, "student@example.com", 10)

	_, err := service.SubmitAttempt(user.ID, 999, AttemptInput{Score: 5, TotalQuestions: 10})
	assert.ErrorIs(t, err, models.ErrQuizNotFound)

	var count int64
	require.NoError(t, db.Model(&models.QuizAttempt{}).Count(&count).Error)
	assert.Zero(t, count)
}

// A failure after the attempt insert (here: the profile row is missing) must
// roll the whole submission back, including the attempt and ledger rows.
func TestSubmitAttemptIsAtomic(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	user := &models.User{Email: "noprofile@example.com", HashedPassword: "x", IsActive: true}
	require.NoError(t, db.Create(user).Error)
	qz := seedQuiz(t, db, "Physics")

	_, err := service.SubmitAttempt(user.ID, qz.ID, AttemptInput{Score: 9, TotalQuestions: 10, CorrectAnswers: 9})
	require.Error(t, err)

	var attemptCount, recordCount int64
	require.NoError(t, db.Model(&models.QuizAttempt{}).Count(&attemptCount).Error)
	require.NoError(t, db.Model(&models.XPRecord{}).Count(&recordCount).Error)
	assert.Zero(t, attemptCount, "attempt row must be rolled back")
	assert.Zero(t, recordCount, "xp record must be rolled back")
}

func TestSubmitAttemptAccumulatesXP(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	user := seedUserWithProfile(t, db, "student@example.com", 10)
	qz := seedQuiz(t, db, "History")

	_, err := service.SubmitAttempt(user.ID, qz.ID, AttemptInput{Score: 9, TotalQuestions: 10, CorrectAnswers: 9})
	require.NoError(t, err)
	_, err = service.SubmitAttempt(user.ID, qz.ID, AttemptInput{Score: 6, TotalQuestions: 10, CorrectAnswers: 6})
	require.NoError(t, err)

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, 125, profile.TotalXP)

	var sum int
	require.NoError(t, db.Model(&models.XPRecord{}).
		Select("COALESCE(SUM(xp_amount), 0)").
		Where("user_id = ?", user.ID).
		Scan(&sum).Error)
	assert.Equal(t, profile.TotalXP, sum, "ledger sum must match profile total")
}

func TestGetQuestionsStripsAnswerKey(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	qz := seedQuiz(t, db, "Biology")
	require.NoError(t, db.Create(&models.QuizQuestion{
		QuizID:        qz.ID,
		QuestionText:  "What is the powerhouse of the cell?",
		OptionA:       "Nucleus",
		OptionB:       "Mitochondria",
		OptionC:       "Ribosome",
		OptionD:       "Golgi body",
		CorrectAnswer: "B",
		Explanation:   "Mitochondria produce ATP.",
	}).Error)

	questions, err := service.GetQuestions(qz.ID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "What is the powerhouse of the cell?", questions[0].QuestionText)
	assert.Equal(t, "Mitochondria", questions[0].OptionB)
}

func TestGetQuestionsUnknownQuiz(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	_, err := service.GetQuestions(42)
	assert.ErrorIs(t, err, models.ErrQuizNotFound)
}

func TestListQuizzesFiltersBySubject(t *testing.T) {
	db := newTestDB(t)
	service := NewService(NewRepository(db), nil)

	require.NoError(t, db.Create(&models.Quiz{SubjectID: 1, Title: "Maths A", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Quiz{SubjectID: 2, Title: "Science A", IsActive: true}).Error)
	require.NoError(t, db.Create(&models.Quiz{SubjectID: 1, Title: "Maths retired", IsActive: false}).Error)

	all, err := service.ListQuizzes(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2, "inactive quizzes are hidden")

	subjectID := uint(1)
	maths, err := service.ListQuizzes(&subjectID)
	require.NoError(t, err)
	require.Len(t, maths, 1)
	assert.Equal(t, "Maths A", maths[0].Title)
}
