package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "github.com/phillip/charity-admin-go/models"
)

func TestEventCreate_AppliesDefaults(t *testing.T) {
	s := newTestServer(t, false)

	w, env := s.multipart(t, http.MethodPost, "/api/events", map[string]string{
		"title":    "Beach Cleanup",
		"date":     "2024-02-15",
		"time":     "9-12",
		"location": "Mumbai",
		"category": "Environment",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.True(t, env.Success)

	ev := decode[models.Event](t, env.Data)
	assert.False(t, ev.ID.IsZero())
	assert.False(t, ev.CreatedAt.IsZero())
	assert.Equal(t, "Beach Cleanup", ev.Title)
	assert.Equal(t, "/placeholder.svg", ev.Image)
	assert.Equal(t, "0+", ev.Interested)
	assert.Equal(t, "upcoming", ev.Status)
	assert.Equal(t, 0, ev.Registered)
	assert.Equal(t, 100, ev.Capacity)
	assert.Equal(t, 0, ev.Volunteers)
	assert.Empty(t, s.provider.uploads)
}

func TestEventCreate_MissingRequiredFields(t *testing.T) {
	s := newTestServer(t, false)

	w, env := s.json(t, http.MethodPost, "/api/events", map[string]any{"title": "No date"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "date is required")
	assert.Contains(t, env.Error, "location is required")

	_, list := s.json(t, http.MethodGet, "/api/events", nil)
	assert.JSONEq(t, `[]`, string(list.Data))
}

func TestEventCreate_MalformedNumber(t *testing.T) {
	s := newTestServer(t, false)

	w, env := s.json(t, http.MethodPost, "/api/events", map[string]any{
		"title": "x", "date": "2024-02-15", "time": "9", "location": "y", "category": "Health",
		"capacity": "lots",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "capacity must be a number", env.Error)
}

func TestEventCreate_NegativeCounterRejected(t *testing.T) {
	s := newTestServer(t, false)

	w, env := s.multipart(t, http.MethodPost, "/api/events", map[string]string{
		"title": "x", "date": "2024-02-15", "time": "9", "location": "y", "category": "Health",
		"capacity": "-5",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "capacity cannot be negative", env.Error)

	_, list := s.json(t, http.MethodGet, "/api/events", nil)
	assert.JSONEq(t, `[]`, string(list.Data))
}

func TestEventCreate_InvalidDate(t *testing.T) {
	s := newTestServer(t, false)

	w, env := s.json(t, http.MethodPost, "/api/events", map[string]any{
		"title": "x", "date": "15/02/2024", "time": "9", "location": "y", "category": "Health",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "invalid date format")
}

func TestListEmpty(t *testing.T) {
	s := newTestServer(t, false)

	w, env := s.json(t, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestEventsListedByDate(t *testing.T) {
	s := newTestServer(t, false)
	for _, d := range []string{"2024-03-01", "2024-01-10", "2024-02-15"} {
		w, _ := s.json(t, http.MethodPost, "/api/events", map[string]any{
			"title": d, "date": d, "time": "9", "location": "x", "category": "Health",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	_, env := s.json(t, http.MethodGet, "/api/events", nil)
	events := decode[[]models.Event](t, env.Data)
	require.Len(t, events, 3)
	assert.Equal(t, "2024-01-10", events[0].Date)
	assert.Equal(t, "2024-02-15", events[1].Date)
	assert.Equal(t, "2024-03-01", events[2].Date)
}

func TestList_ETagNotModified(t *testing.T) {
	s := newTestServer(t, false)
	s.json(t, http.MethodPost, "/api/programs", map[string]any{"title": "Literacy", "description": "Reading camps"})

	w, _ := s.json(t, http.MethodGet, "/api/programs", nil)
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req, _ := http.NewRequest(http.MethodGet, "/api/programs", nil)
	req.Header.Set("If-None-Match", etag)
	w2, _ := s.do(t, req)
	assert.Equal(t, http.StatusNotModified, w2.Code)
}

func TestBannerUpdate_TitleOnlyKeepsImages(t *testing.T) {
	s := newTestServer(t, false)

	w, env := s.multipart(t, http.MethodPost, "/api/banners",
		map[string]string{"title": "Welcome"},
		upload{"images", "hero.jpg", "jpeg"}, upload{"images", "second.jpg", "jpeg"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Banner](t, env.Data)
	require.Equal(t, []string{
		"https://media.test/banners/hero.jpg",
		"https://media.test/banners/second.jpg",
	}, created.Images)
	assert.True(t, created.IsActive)

	w, env = s.multipart(t, http.MethodPut, "/api/banners/"+created.ID.Hex(), map[string]string{"title": "Welcome back"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.Banner](t, env.Data)
	assert.Equal(t, "Welcome back", updated.Title)
	assert.Equal(t, created.Images, updated.Images)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, created.ID, updated.ID)
	assert.Empty(t, s.provider.deletes)
}

func TestBannerCreate_RequiresImageSource(t *testing.T) {
	s := newTestServer(t, false)

	w, env := s.json(t, http.MethodPost, "/api/banners", map[string]any{"title": "No image"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "images is required")

	w, env = s.json(t, http.MethodPost, "/api/banners", map[string]any{"title": "Linked", "imageUrl": "https://cdn.example.org/b.png"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"https://cdn.example.org/b.png"}, decode[models.Banner](t, env.Data).Images)
}

func TestComplianceCreate_RequiresImage(t *testing.T) {
	s := newTestServer(t, false)

	w, _ := s.json(t, http.MethodPost, "/api/compliance", map[string]any{"title": "80G certificate"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := s.multipart(t, http.MethodPost, "/api/compliance",
		map[string]string{"title": "80G certificate"}, upload{"image", "80g.png", "png"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "https://media.test/compliance/80g.png", decode[models.ComplianceDocument](t, env.Data).Image)
}

func TestCreate_UploadFailureAborts(t *testing.T) {
	s := newTestServer(t, false)
	s.provider.err = errProviderDown

	w, env := s.multipart(t, http.MethodPost, "/api/gallery",
		map[string]string{"title": "Camp"}, upload{"image", "camp.jpg", "jpeg"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "image upload failed")

	_, list := s.json(t, http.MethodGet, "/api/gallery", nil)
	assert.JSONEq(t, `[]`, string(list.Data))
}

func TestUpdate_UploadFailureLeavesEntityUnchanged(t *testing.T) {
	s := newTestServer(t, false)
	_, env := s.json(t, http.MethodPost, "/api/board-members", map[string]any{"name": "A. Rao", "position": "Chair"})
	member := decode[models.BoardMember](t, env.Data)

	s.provider.err = errProviderDown
	w, _ := s.multipart(t, http.MethodPut, "/api/board-members/"+member.ID.Hex(),
		map[string]string{"position": "Treasurer"}, upload{"image", "rao.jpg", "jpeg"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	_, env = s.json(t, http.MethodGet, "/api/board-members/"+member.ID.Hex(), nil)
	got := decode[models.BoardMember](t, env.Data)
	assert.Equal(t, "Chair", got.Position)
	assert.Equal(t, models.Placeholder, got.Image)
}

func TestUpdate_ReplacedImageIsDiscarded(t *testing.T) {
	s := newTestServer(t, false)
	_, env := s.multipart(t, http.MethodPost, "/api/programs",
		map[string]string{"title": "Meals", "description": "School meals"}, upload{"image", "a.jpg", "x"})
	program := decode[models.Program](t, env.Data)

	w, env := s.multipart(t, http.MethodPatch, "/api/programs/"+program.ID.Hex(), nil, upload{"image", "b.jpg", "y"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://media.test/programs/b.jpg", decode[models.Program](t, env.Data).Image)
	assert.Equal(t, []string{"https://media.test/programs/a.jpg"}, s.provider.deletes)
}

func TestDelete_KeepsMediaItDidNotUpload(t *testing.T) {
	s := newTestServer(t, false)
	_, env := s.multipart(t, http.MethodPost, "/api/banners",
		map[string]string{"title": "B"}, upload{"images", "b.jpg", "jpeg"})
	b := decode[models.Banner](t, env.Data)
	require.Equal(t, []string{"https://media.test/banners/b.jpg"}, b.Images)

	w, env := s.json(t, http.MethodPost, "/api/banners", map[string]any{"title": "C", "imageUrl": b.Images[0]})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	c := decode[models.Banner](t, env.Data)

	w, _ = s.json(t, http.MethodDelete, "/api/banners/"+c.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, s.provider.deletes)

	w, _ = s.json(t, http.MethodDelete, "/api/banners/"+b.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"https://media.test/banners/b.jpg"}, s.provider.deletes)
}

func TestUpdate_ReplacedLinkedImageIsKept(t *testing.T) {
	s := newTestServer(t, false)
	shared := "https://media.test/programs/shared.jpg"
	_, env := s.json(t, http.MethodPost, "/api/programs", map[string]any{
		"title": "Meals", "description": "School meals", "imageUrl": shared,
	})
	program := decode[models.Program](t, env.Data)

	w, env := s.multipart(t, http.MethodPatch, "/api/programs/"+program.ID.Hex(), nil, upload{"image", "own.jpg", "x"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://media.test/programs/own.jpg", decode[models.Program](t, env.Data).Image)
	assert.Empty(t, s.provider.deletes)

	w, _ = s.json(t, http.MethodPatch, "/api/programs/"+program.ID.Hex(), map[string]any{"imageUrl": shared})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"https://media.test/programs/own.jpg"}, s.provider.deletes)

	w, _ = s.json(t, http.MethodDelete, "/api/programs/"+program.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"https://media.test/programs/own.jpg"}, s.provider.deletes)
}

func TestDelete_CleanupGetsWriteBudget(t *testing.T) {
	s := newTestServer(t, false)
	_, env := s.multipart(t, http.MethodPost, "/api/gallery",
		map[string]string{"title": "Camp"}, upload{"image", "camp.jpg", "jpeg"})
	img := decode[models.GalleryImage](t, env.Data)

	w, _ := s.json(t, http.MethodDelete, "/api/gallery/"+img.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, s.provider.budgets, 1)
	assert.Greater(t, s.provider.budgets[0], readTimeout)
}

func TestUpdate_FieldMergeLeavesOthers(t *testing.T) {
	s := newTestServer(t, false)
	_, env := s.json(t, http.MethodPost, "/api/campaigns", map[string]any{
		"title": "Clean water", "description": "Wells", "goalAmount": 5000, "category": "Clean Water",
	})
	campaign := decode[models.Campaign](t, env.Data)
	assert.Equal(t, []string{models.Placeholder}, campaign.Images)
	assert.Equal(t, "active", campaign.Status)

	w, env := s.json(t, http.MethodPut, "/api/campaigns/"+campaign.ID.Hex(), map[string]any{"raisedAmount": 1250})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.Campaign](t, env.Data)
	assert.Equal(t, 1250.0, updated.RaisedAmount)
	assert.Equal(t, campaign.Title, updated.Title)
	assert.Equal(t, campaign.GoalAmount, updated.GoalAmount)
	assert.Equal(t, campaign.Images, updated.Images)
	assert.True(t, !updated.UpdatedAt.Before(campaign.UpdatedAt))
}

func TestCampaignCreate_NonFiniteAmountRejected(t *testing.T) {
	s := newTestServer(t, false)

	for _, v := range []string{"NaN", "Inf", "-Inf"} {
		w, env := s.multipart(t, http.MethodPost, "/api/campaigns",
			map[string]string{"title": "Water", "description": "Wells", "goalAmount": v})
		assert.Equal(t, http.StatusBadRequest, w.Code, v)
		assert.Equal(t, "goalAmount must be a number", env.Error, v)
	}

	w, env := s.json(t, http.MethodGet, "/api/campaigns", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestCampaignUpdate_NonFiniteAmountRejected(t *testing.T) {
	s := newTestServer(t, false)
	_, env := s.json(t, http.MethodPost, "/api/campaigns", map[string]any{
		"title": "Water", "description": "Wells", "goalAmount": 5000,
	})
	campaign := decode[models.Campaign](t, env.Data)

	w, env := s.multipart(t, http.MethodPatch, "/api/campaigns/"+campaign.ID.Hex(), map[string]string{"raisedAmount": "Inf"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "raisedAmount must be a number", env.Error)

	w, env = s.json(t, http.MethodGet, "/api/campaigns", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	list := decode[[]models.Campaign](t, env.Data)
	require.Len(t, list, 1)
	assert.Equal(t, 0.0, list[0].RaisedAmount)
}

func TestCampaignCreate_TooManyImages(t *testing.T) {
	s := newTestServer(t, false)
	w, env := s.json(t, http.MethodPost, "/api/campaigns", map[string]any{
		"title": "x", "description": "y", "goalAmount": 1,
		"images": []string{"https://a/1", "https://a/2", "https://a/3", "https://a/4"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "at most 3 images allowed, got 4", env.Error)
}

func TestUpdate_NotFoundAndInvalidID(t *testing.T) {
	s := newTestServer(t, false)

	w, env := s.json(t, http.MethodPut, "/api/videos/65f000000000000000000000", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "video not found", env.Error)

	w, env = s.json(t, http.MethodPut, "/api/videos/nope", map[string]any{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid video id", env.Error)
}

func TestUpdate_NoFields(t *testing.T) {
	s := newTestServer(t, false)
	_, env := s.json(t, http.MethodPost, "/api/impact-stats", map[string]any{"label": "Meals", "value": "10,000+"})
	stat := decode[models.ImpactStat](t, env.Data)

	w, env := s.json(t, http.MethodPut, "/api/impact-stats/"+stat.ID.Hex(), map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "no fields to update", env.Error)
}

func TestUpdate_BlankRequiredRejected(t *testing.T) {
	s := newTestServer(t, false)
	_, env := s.json(t, http.MethodPost, "/api/impact-stats", map[string]any{"label": "Meals", "value": "10,000+"})
	stat := decode[models.ImpactStat](t, env.Data)

	w, env := s.json(t, http.MethodPut, "/api/impact-stats/"+stat.ID.Hex(), map[string]any{"label": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "label cannot be empty", env.Error)
}

func TestCampaignDeleteTwice(t *testing.T) {
	s := newTestServer(t, false)
	_, env := s.multipart(t, http.MethodPost, "/api/campaigns",
		map[string]string{"title": "Books", "description": "Library", "goalAmount": "200"},
		upload{"images", "cover.jpg", "x"})
	campaign := decode[models.Campaign](t, env.Data)

	w, env := s.json(t, http.MethodDelete, "/api/campaigns/"+campaign.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, []string{"https://media.test/campaigns/cover.jpg"}, s.provider.deletes)

	w, env = s.json(t, http.MethodDelete, "/api/campaigns/"+campaign.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "campaign not found", env.Error)

	w, _ = s.json(t, http.MethodGet, "/api/campaigns/"+campaign.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAfterCreatesAndDeletes(t *testing.T) {
	s := newTestServer(t, false)
	var ids []string
	for _, name := range []string{"Acme", "Globex", "Initech", "Umbrella"} {
		_, env := s.json(t, http.MethodPost, "/api/collaborators", map[string]any{"name": name})
		ids = append(ids, decode[models.Collaborator](t, env.Data).ID.Hex())
	}
	s.json(t, http.MethodDelete, "/api/collaborators/"+ids[1], nil)
	s.json(t, http.MethodDelete, "/api/collaborators/"+ids[3], nil)

	_, env := s.json(t, http.MethodGet, "/api/collaborators", nil)
	list := decode[[]models.Collaborator](t, env.Data)
	require.Len(t, list, 2)
	assert.Equal(t, "Acme", list[0].Name)
	assert.Equal(t, "Initech", list[1].Name)
}

func TestStrictCategories(t *testing.T) {
	open := newTestServer(t, false)
	w, _ := open.json(t, http.MethodPost, "/api/gallery", map[string]any{"title": "x", "category": "Anything goes"})
	assert.Equal(t, http.StatusCreated, w.Code)

	strict := newTestServer(t, true)
	w, env := strict.json(t, http.MethodPost, "/api/gallery", map[string]any{"title": "x", "category": "Anything goes"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "category must be one of")

	w, _ = strict.json(t, http.MethodPost, "/api/gallery", map[string]any{"title": "x", "category": "Events"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCategories(t *testing.T) {
	s := newTestServer(t, false)
	w, env := s.json(t, http.MethodGet, "/api/events/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, eventCategories, decode[[]string](t, env.Data))

	_, env = s.json(t, http.MethodGet, "/api/banners/categories", nil)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestMessageCreate(t *testing.T) {
	s := newTestServer(t, false)

	w, env := s.json(t, http.MethodPost, "/api/messages", map[string]any{"name": "Asha", "email": "not-an-email", "message": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email is not a valid email address", env.Error)

	w, env = s.json(t, http.MethodPost, "/api/messages", map[string]any{"name": "Asha", "email": "asha@example.org", "message": "hi"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "unread", decode[models.Message](t, env.Data).Status)
}

func TestMessagesNewestFirst(t *testing.T) {
	s := newTestServer(t, false)
	for _, n := range []string{"first", "second"} {
		s.json(t, http.MethodPost, "/api/messages", map[string]any{"name": n, "email": "a@b.org", "message": "m"})
	}
	_, env := s.json(t, http.MethodGet, "/api/messages", nil)
	msgs := decode[[]models.Message](t, env.Data)
	require.Len(t, msgs, 2)
	assert.Equal(t, "second", msgs[0].Name)
}

func TestMediaArticleContentSanitized(t *testing.T) {
	s := newTestServer(t, false)
	w, env := s.json(t, http.MethodPost, "/api/media-articles", map[string]any{
		"title": "Feature", "publication": "Daily", "content": `<p>Hello</p><script>alert(1)</script>`,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "<p>Hello</p>", decode[models.MediaArticle](t, env.Data).Content)
}

func TestVideoRequiresSource(t *testing.T) {
	s := newTestServer(t, false)
	w, _ := s.json(t, http.MethodPost, "/api/videos", map[string]any{"title": "Highlights"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := s.multipart(t, http.MethodPost, "/api/videos", map[string]string{"title": "Highlights"},
		upload{"video", "clip.mp4", "mp4"})
	require.Equal(t, http.StatusCreated, w.Code)
	v := decode[models.Video](t, env.Data)
	assert.Equal(t, "https://media.test/videos/clip.mp4", v.VideoURL)
	assert.Equal(t, models.Placeholder, v.Thumbnail)
}

func TestTrackRecordYearValidated(t *testing.T) {
	s := newTestServer(t, false)
	w, env := s.json(t, http.MethodPost, "/api/track-records", map[string]any{"title": "Founded", "year": 1700})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "year must be at least 1900", env.Error)

	for _, y := range []int{2015, 2009} {
		w, _ = s.json(t, http.MethodPost, "/api/track-records", map[string]any{"title": "T", "year": y})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	_, env = s.json(t, http.MethodGet, "/api/track-records", nil)
	records := decode[[]models.TrackRecord](t, env.Data)
	require.Len(t, records, 2)
	assert.Equal(t, 2009, records[0].Year)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, false)
	w, env := s.json(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}
