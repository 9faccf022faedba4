package service

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mural/internal/contract"
	"mural/internal/domain/entity"
	"mural/internal/domain/policy"
	"mural/internal/domain/sqlite"
	"mural/internal/domain/sqlite/repository"
	"mural/internal/ranking"
	"mural/internal/utils/apierror"
	"mural/internal/utils/uid"
	"mural/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestBoard(t *testing.T) (*DefaultBoardService, *gorm.DB) {
	t.Helper()
	uid.Init(1)

	db, err := sqlite.Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("suggestionmodule", validators.SuggestionModule))

	board := NewBoardService(
		repository.NewSuggestionRepository(db),
		repository.NewVoteRepository(db),
		policy.NewVisibilityPolicy(nil),
		validate,
	)
	return board, db
}

func validSubmission() *contract.SuggestionRequest {
	return &contract.SuggestionRequest{
		Title:       "Integrar agenda com o bot",
		Description: strings.Repeat("Detalhes da sugestão. ", 10), // 220 chars
		Module:      "Agenda",
		Email:       "cliente@example.com",
	}
}

func TestSubmitSuggestion_Defaults(t *testing.T) {
	board, _ := newTestBoard(t)

	resp, apierr := board.SubmitSuggestion(validSubmission())
	require.Nil(t, apierr)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Recebido", resp.Status)
	assert.True(t, resp.IsPublic)
	assert.False(t, resp.IsPinned)
	assert.Zero(t, resp.Votes)
	assert.Zero(t, resp.CommentsCount)
}

func TestSubmitSuggestion_DescriptionBoundary(t *testing.T) {
	board, _ := newTestBoard(t)

	tooShort := validSubmission()
	tooShort.Description = strings.Repeat("a", 199)
	_, apierr := board.SubmitSuggestion(tooShort)
	require.NotNil(t, apierr)

	structured, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok)
	assert.Equal(t, 400, structured.Code())
	assert.NotEmpty(t, structured.Errors["description"])

	exact := validSubmission()
	exact.Description = strings.Repeat("a", 200)
	_, apierr = board.SubmitSuggestion(exact)
	assert.Nil(t, apierr)
}

func TestSubmitSuggestion_UnknownModule(t *testing.T) {
	board, _ := newTestBoard(t)

	req := validSubmission()
	req.Module = "Estoque"
	_, apierr := board.SubmitSuggestion(req)
	require.NotNil(t, apierr)

	structured, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok)
	assert.NotEmpty(t, structured.Errors["module"])
}

func TestSubmitSuggestion_MalformedEmail(t *testing.T) {
	board, _ := newTestBoard(t)

	req := validSubmission()
	req.Email = "not-an-email"
	_, apierr := board.SubmitSuggestion(req)
	require.NotNil(t, apierr)

	structured, ok := apierr.(*apierror.StructuredError)
	require.True(t, ok)
	assert.NotEmpty(t, structured.Errors["email"])
}

func TestSubmitSuggestion_ReservedDomainForcedPrivate(t *testing.T) {
	board, _ := newTestBoard(t)

	public := true
	req := validSubmission()
	req.Email = "dev@mksolution.com"
	req.IsPublic = &public

	resp, apierr := board.SubmitSuggestion(req)
	require.Nil(t, apierr)
	assert.False(t, resp.IsPublic)
}

func TestGetBoard_VisibilityPartition(t *testing.T) {
	board, _ := newTestBoard(t)

	_, apierr := board.SubmitSuggestion(validSubmission())
	require.Nil(t, apierr)

	private := validSubmission()
	private.Email = "dev@mksolution.com"
	_, apierr = board.SubmitSuggestion(private)
	require.Nil(t, apierr)

	publicView, apierr := board.GetBoard(ranking.Query{}, "", false)
	require.Nil(t, apierr)
	assert.Len(t, publicView, 1)

	staffView, apierr := board.GetBoard(ranking.Query{}, "", true)
	require.Nil(t, apierr)
	assert.Len(t, staffView, 2)
}

func TestGetBoard_ResolvesHasVoted(t *testing.T) {
	board, _ := newTestBoard(t)

	resp, apierr := board.SubmitSuggestion(validSubmission())
	require.Nil(t, apierr)

	_, apierr = board.ToggleVote(resp.ID, &contract.VoteRequest{Email: "voter@example.com"})
	require.Nil(t, apierr)

	view, apierr := board.GetBoard(ranking.Query{}, "voter@example.com", false)
	require.Nil(t, apierr)
	require.Len(t, view, 1)
	assert.True(t, view[0].HasVoted)

	anonymous, apierr := board.GetBoard(ranking.Query{}, "", false)
	require.Nil(t, apierr)
	assert.False(t, anonymous[0].HasVoted)
}

func TestGetBoard_PinnedFirst(t *testing.T) {
	board, db := newTestBoard(t)

	first, apierr := board.SubmitSuggestion(validSubmission())
	require.Nil(t, apierr)
	second, apierr := board.SubmitSuggestion(validSubmission())
	require.Nil(t, apierr)

	// Give the older suggestion more votes, then pin the other one.
	_, apierr = board.ToggleVote(first.ID, &contract.VoteRequest{Email: "a@example.com"})
	require.Nil(t, apierr)

	require.NoError(t, db.Model(&entity.Suggestion{}).
		Where("id = ?", second.ID).
		Update("is_pinned", true).Error)

	view, apierr := board.GetBoard(ranking.Query{Sort: ranking.SortVotes}, "", false)
	require.Nil(t, apierr)
	require.Len(t, view, 2)
	assert.Equal(t, second.ID, view[0].ID)
	assert.Equal(t, first.ID, view[1].ID)
}

func TestToggleVote_RoundTrip(t *testing.T) {
	board, _ := newTestBoard(t)

	resp, apierr := board.SubmitSuggestion(validSubmission())
	require.Nil(t, apierr)

	vote, apierr := board.ToggleVote(resp.ID, &contract.VoteRequest{Email: "voter@example.com"})
	require.Nil(t, apierr)
	assert.True(t, vote.Voted)
	assert.Equal(t, 1, vote.Votes)

	vote, apierr = board.ToggleVote(resp.ID, &contract.VoteRequest{Email: "voter@example.com"})
	require.Nil(t, apierr)
	assert.False(t, vote.Voted)
	assert.Equal(t, 0, vote.Votes)
}

func TestToggleVote_MissingSuggestion(t *testing.T) {
	board, _ := newTestBoard(t)

	_, apierr := board.ToggleVote("nope", &contract.VoteRequest{Email: "voter@example.com"})
	require.NotNil(t, apierr)
	assert.Equal(t, 404, apierr.Code())
}

func TestSetStatus_AnyTransitionAllowed(t *testing.T) {
	board, db := newTestBoard(t)

	resp, apierr := board.SubmitSuggestion(validSubmission())
	require.Nil(t, apierr)

	var before entity.Suggestion
	require.NoError(t, db.First(&before, "id = ?", resp.ID).Error)

	// The workflow is staff-directed: walk through states in an order
	// no linear pipeline would allow.
	for _, label := range []string{"Implementada", "Recebido", "Rejeitada", "Em análise", "Aprovada"} {
		time.Sleep(2 * time.Millisecond)
		updated, apierr := board.SetStatus(resp.ID, &contract.StatusUpdateRequest{Status: label})
		require.Nil(t, apierr)
		assert.Equal(t, label, updated.Status)
	}

	var after entity.Suggestion
	require.NoError(t, db.First(&after, "id = ?", resp.ID).Error)
	assert.Greater(t, after.UpdatedAt, before.UpdatedAt)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
}

func TestSetStatus_WithAdminResponse(t *testing.T) {
	board, _ := newTestBoard(t)

	resp, apierr := board.SubmitSuggestion(validSubmission())
	require.Nil(t, apierr)

	answer := "Entrou no roadmap do próximo trimestre"
	updated, apierr := board.SetStatus(resp.ID, &contract.StatusUpdateRequest{
		Status:        "approved",
		AdminResponse: &answer,
	})
	require.Nil(t, apierr)
	assert.Equal(t, "Aprovada", updated.Status)
	assert.Equal(t, answer, updated.AdminResponse)
}

func TestSetStatus_UnknownStatus(t *testing.T) {
	board, _ := newTestBoard(t)

	resp, apierr := board.SubmitSuggestion(validSubmission())
	require.Nil(t, apierr)

	_, apierr = board.SetStatus(resp.ID, &contract.StatusUpdateRequest{Status: "Concluído"})
	require.NotNil(t, apierr)
	assert.Equal(t, 400, apierr.Code())
}

func TestSetPinned(t *testing.T) {
	board, _ := newTestBoard(t)

	resp, apierr := board.SubmitSuggestion(validSubmission())
	require.Nil(t, apierr)

	pinned := true
	updated, apierr := board.SetPinned(resp.ID, &contract.PinUpdateRequest{Pinned: &pinned})
	require.Nil(t, apierr)
	assert.True(t, updated.IsPinned)

	unpinned := false
	updated, apierr = board.SetPinned(resp.ID, &contract.PinUpdateRequest{Pinned: &unpinned})
	require.Nil(t, apierr)
	assert.False(t, updated.IsPinned)
}

func TestGetSuggestion_NotFound(t *testing.T) {
	board, _ := newTestBoard(t)

	_, apierr := board.GetSuggestion("missing")
	require.NotNil(t, apierr)
	assert.Equal(t, 404, apierr.Code())
}

// racingVoteRepo lands a vote right before the staff write commits,
// reproducing a voter and a staff member acting on the same suggestion
// at the same moment.
type racingVoteRepo struct {
	*repository.DefaultSuggestionRepository
	votes      *repository.DefaultVoteRepository
	voterEmail string
}

func (r *racingVoteRepo) UpdateFields(id string, fields map[string]any) error {
	if _, _, err := r.votes.Toggle(id, r.voterEmail); err != nil {
		return err
	}
	return r.DefaultSuggestionRepository.UpdateFields(id, fields)
}

func TestSetStatus_ConcurrentVoteSurvives(t *testing.T) {
	board, db := newTestBoard(t)

	resp, apierr := board.SubmitSuggestion(validSubmission())
	require.Nil(t, apierr)

	board.SuggestionRepo = &racingVoteRepo{
		DefaultSuggestionRepository: repository.NewSuggestionRepository(db),
		votes:                       repository.NewVoteRepository(db),
		voterEmail:                  "voter@example.com",
	}

	updated, apierr := board.SetStatus(resp.ID, &contract.StatusUpdateRequest{Status: "Aprovada"})
	require.Nil(t, apierr)
	assert.Equal(t, "Aprovada", updated.Status)

	var stored entity.Suggestion
	require.NoError(t, db.First(&stored, "id = ?", resp.ID).Error)
	assert.Equal(t, entity.StatusApproved, stored.Status)
	assert.Equal(t, 1, stored.Votes)
}

func TestSetPinned_ConcurrentVoteSurvives(t *testing.T) {
	board, db := newTestBoard(t)

	resp, apierr := board.SubmitSuggestion(validSubmission())
	require.Nil(t, apierr)

	board.SuggestionRepo = &racingVoteRepo{
		DefaultSuggestionRepository: repository.NewSuggestionRepository(db),
		votes:                       repository.NewVoteRepository(db),
		voterEmail:                  "voter@example.com",
	}

	pinned := true
	updated, apierr := board.SetPinned(resp.ID, &contract.PinUpdateRequest{Pinned: &pinned})
	require.Nil(t, apierr)
	assert.True(t, updated.IsPinned)

	var stored entity.Suggestion
	require.NoError(t, db.First(&stored, "id = ?", resp.ID).Error)
	assert.True(t, stored.IsPinned)
	assert.Equal(t, 1, stored.Votes)
}
