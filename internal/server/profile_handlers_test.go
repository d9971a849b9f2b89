package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"netlife/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_RendersCountsAndButton(t *testing.T) {
	_, app, db := newTestServer(t)
	createActiveUser(t, db, "alice", "Secret123")
	bob := createActiveUser(t, db, "bob", "Secret123")
	require.NoError(t, db.Create(&models.Post{UserID: bob.ID, MainImage: "images/b.jpg", Preview: "images/b.jpg"}).Error)

	cookie := login(t, app, "alice", "Secret123")

	resp := getPage(t, app, "/profile/bob", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "bob")
	assert.Contains(t, body, "1 posts")
	assert.Contains(t, body, "Follow")
}

func TestProfile_OwnProfileShowsEditLink(t *testing.T) {
	_, app, db := newTestServer(t)
	createActiveUser(t, db, "alice", "Secret123")
	cookie := login(t, app, "alice", "Secret123")

	resp := getPage(t, app, "/profile/alice", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Edit profile")
}

func TestProfile_UnknownUser(t *testing.T) {
	_, app, db := newTestServer(t)
	createActiveUser(t, db, "alice", "Secret123")
	cookie := login(t, app, "alice", "Secret123")

	resp := getPage(t, app, "/profile/nobody", cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFollow_ToggleAndFlash(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := createActiveUser(t, db, "alice", "Secret123")
	bob := createActiveUser(t, db, "bob", "Secret123")
	cookie := login(t, app, "alice", "Secret123")

	resp := postForm(t, app, "/follow/bob/alice", url.Values{}, cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/bob", resp.Header.Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", alice.ID, bob.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The follow flash renders on the next page view.
	page := getPage(t, app, "/profile/bob", cookie)
	assert.Contains(t, readBody(t, page), "You have just followed with bob")

	// Toggling again removes the edge and flashes the unfollow notice.
	resp = postForm(t, app, "/follow/bob/alice", url.Values{}, cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	require.NoError(t, db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", alice.ID, bob.ID).Count(&count).Error)
	assert.Zero(t, count)

	page = getPage(t, app, "/profile/bob", cookie)
	assert.Contains(t, readBody(t, page), "You have just unfollowed from bob")
}

func TestFollow_UnknownTarget(t *testing.T) {
	_, app, db := newTestServer(t)
	createActiveUser(t, db, "alice", "Secret123")
	cookie := login(t, app, "alice", "Secret123")

	resp := postForm(t, app, "/follow/nobody/alice", url.Values{}, cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFollow_TargetIsFirstSegment(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := createActiveUser(t, db, "alice", "Secret123")
	bob := createActiveUser(t, db, "bob", "Secret123")
	createActiveUser(t, db, "carol", "Secret123")
	cookie := login(t, app, "alice", "Secret123")

	// The second segment never picks the target and the actor is always the
	// session user, whatever the path claims.
	resp := postForm(t, app, "/follow/bob/carol", url.Values{}, cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/bob", resp.Header.Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", alice.ID, bob.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, db.Model(&models.Follow{}).
		Where("followee_id != ?", bob.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFollowerListings(t *testing.T) {
	_, app, db := newTestServer(t)
	createActiveUser(t, db, "alice", "Secret123")
	createActiveUser(t, db, "bob", "Secret123")
	cookie := login(t, app, "alice", "Secret123")

	resp := postForm(t, app, "/follow/bob/alice", url.Values{}, cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	page := getPage(t, app, "/followers_accounts/bob", cookie)
	require.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, readBody(t, page), "alice")

	page = getPage(t, app, "/following_accounts/alice", cookie)
	require.Equal(t, http.StatusOK, page.StatusCode)
	assert.Contains(t, readBody(t, page), "bob")
}

func TestUpdateProfile_SavesAndFlashes(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := createActiveUser(t, db, "alice", "Secret123")
	cookie := login(t, app, "alice", "Secret123")

	resp := postForm(t, app, "/update_profile", url.Values{
		"first_name":  {"Alice"},
		"second_name": {"Cooper"},
		"bio":         {"hello there"},
	}, cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/alice", resp.Header.Get("Location"))

	var profile models.ProfilePage
	require.NoError(t, db.Where("user_id = ?", alice.ID).First(&profile).Error)
	assert.Equal(t, "Alice", profile.FirstName)
	assert.Equal(t, "hello there", profile.Bio)

	page := getPage(t, app, "/profile/alice", cookie)
	assert.Contains(t, readBody(t, page), "Your profile was successfully updated!")
}

func TestUpdateProfile_IgnoresUserQueryParam(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := createActiveUser(t, db, "alice", "Secret123")
	bob := createActiveUser(t, db, "bob", "Secret123")
	cookie := login(t, app, "alice", "Secret123")

	resp := postForm(t, app, "/update_profile?user=bob", url.Values{
		"bio": {"mine, not yours"},
	}, cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/profile/alice", resp.Header.Get("Location"))

	var profile models.ProfilePage
	require.NoError(t, db.Where("user_id = ?", alice.ID).First(&profile).Error)
	assert.Equal(t, "mine, not yours", profile.Bio)

	var bobProfile models.ProfilePage
	require.NoError(t, db.Where("user_id = ?", bob.ID).First(&bobProfile).Error)
	assert.Empty(t, bobProfile.Bio)
}

func TestUpdateProfile_WithAvatarUpload(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := createActiveUser(t, db, "alice", "Secret123")
	cookie := login(t, app, "alice", "Secret123")

	body, contentType := multipartBody(t,
		map[string]string{"first_name": "Alice"},
		map[string][]byte{"avatar": testPNG(t)},
	)
	req := httptest.NewRequest(http.MethodPost, "/update_profile", body)
	req.Header.Set("Content-Type", contentType)
	req.AddCookie(cookie)

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	var profile models.ProfilePage
	require.NoError(t, db.Where("user_id = ?", alice.ID).First(&profile).Error)
	assert.NotEqual(t, models.DefaultAvatar, profile.Avatar)
	assert.Contains(t, profile.Avatar, "avatars/")
}

func TestUpdateProfilePage_Renders(t *testing.T) {
	_, app, db := newTestServer(t)
	createActiveUser(t, db, "alice", "Secret123")
	cookie := login(t, app, "alice", "Secret123")

	resp := getPage(t, app, "/update_profile", cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthEndpoints(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp := getPage(t, app, "/health/live")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = getPage(t, app, "/health/ready")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
