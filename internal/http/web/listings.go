package web

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/joblane-hq/joblane/internal/db"
	"github.com/joblane-hq/joblane/internal/model"
	"github.com/joblane-hq/joblane/internal/session"
	"github.com/joblane-hq/joblane/internal/storage"
)

// ListingModule mounts the public browse pages and the owner-scoped
// mutation endpoints.
func ListingModule(store db.Store, files storage.Storage, sessions *session.Manager) Module {
	ctl := newListingController(store, files, sessions)
	return ModuleFunc(func(c *Controller) {
		c.PUBLIC_GET("/", ctl.index)
		c.PUBLIC_GET("/listings/:id", ctl.show)
		c.POST("/listings", ctl.create)
		c.GET("/listings/:id/edit", ctl.edit)
		c.PUT("/listings/:id", ctl.update)
		c.DELETE("/listings/:id", ctl.destroy)
	})
}

type ListingController struct {
	store    db.Store
	files    storage.Storage
	sessions *session.Manager
}

func newListingController(store db.Store, files storage.Storage, sessions *session.Manager) *ListingController {
	return &ListingController{store: store, files: files, sessions: sessions}
}

// GET /?tag=&search=
func (c *ListingController) index(ctx *gin.Context) {
	tag := ctx.Query("tag")
	search := ctx.Query("search")

	listings, err := c.store.FilterListings(tag, search)
	if err != nil {
		render(ctx, c.sessions, http.StatusInternalServerError, "errors/500", nil)
		return
	}

	render(ctx, c.sessions, http.StatusOK, "listings/index", gin.H{
		"Listings": c.withLogoURLs(listings),
		"Tag":      tag,
		"Search":   search,
	})
}

// GET /listings/:id
//
// The create and manage pages live on the same path segment as listing ids;
// gin's routing tree does not take a static sibling of a wildcard, so they
// dispatch here.
func (c *ListingController) show(ctx *gin.Context) {
	switch ctx.Param("id") {
	case "create":
		resolveAuthed(c.createForm)(ctx)
		return
	case "manage":
		resolveAuthed(c.manage)(ctx)
		return
	}

	listing, ok := c.lookup(ctx)
	if !ok {
		return
	}

	render(ctx, c.sessions, http.StatusOK, "listings/show", gin.H{
		"Listing": c.withLogoURL(*listing),
	})
}

// GET /listings/create
func (c *ListingController) createForm(ctx *gin.Context, _ *model.User) {
	render(ctx, c.sessions, http.StatusOK, "listings/create", nil)
}

// GET /listings/manage
func (c *ListingController) manage(ctx *gin.Context, user *model.User) {
	listings, err := c.store.ListListingsByUser(user.ID)
	if err != nil {
		render(ctx, c.sessions, http.StatusInternalServerError, "errors/500", nil)
		return
	}

	render(ctx, c.sessions, http.StatusOK, "listings/manage", gin.H{
		"Listings": c.withLogoURLs(listings),
	})
}

// POST /listings
func (c *ListingController) create(ctx *gin.Context, user *model.User) {
	var form ListingForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, c.sessions, http.StatusUnprocessableEntity, "listings/create", gin.H{
			"Errors": formErrors(err),
			"Form":   form,
		})
		return
	}

	logo, ok := c.saveLogo(ctx)
	if !ok {
		render(ctx, c.sessions, http.StatusInternalServerError, "listings/create", gin.H{
			"Errors": map[string]string{"logo": "Could not store the uploaded logo"},
			"Form":   form,
		})
		return
	}

	if _, err := c.store.CreateListing(user.ID,
		form.Title, form.Company, form.Location, form.Website,
		form.Email, form.Tags, form.Description, logo,
	); err != nil {
		render(ctx, c.sessions, http.StatusInternalServerError, "listings/create", gin.H{
			"Errors": map[string]string{"form": "Could not create the listing"},
			"Form":   form,
		})
		return
	}

	redirectWithFlash(ctx, c.sessions, "/", "Listing created successfully!")
}

// GET /listings/:id/edit
func (c *ListingController) edit(ctx *gin.Context, user *model.User) {
	listing, ok := c.lookupOwned(ctx, user)
	if !ok {
		return
	}

	render(ctx, c.sessions, http.StatusOK, "listings/edit", gin.H{
		"Listing": c.withLogoURL(*listing),
	})
}

// PUT /listings/:id
func (c *ListingController) update(ctx *gin.Context, user *model.User) {
	listing, ok := c.lookupOwned(ctx, user)
	if !ok {
		return
	}

	var form ListingForm
	if err := ctx.ShouldBind(&form); err != nil {
		render(ctx, c.sessions, http.StatusUnprocessableEntity, "listings/edit", gin.H{
			"Errors":  formErrors(err),
			"Form":    form,
			"Listing": c.withLogoURL(*listing),
		})
		return
	}

	logo, ok := c.saveLogo(ctx)
	if !ok {
		render(ctx, c.sessions, http.StatusInternalServerError, "listings/edit", gin.H{
			"Errors":  map[string]string{"logo": "Could not store the uploaded logo"},
			"Form":    form,
			"Listing": c.withLogoURL(*listing),
		})
		return
	}

	if err := c.store.UpdateListing(listing.ID,
		form.Title, form.Company, form.Location, form.Website,
		form.Email, form.Tags, form.Description, logo,
	); err != nil {
		render(ctx, c.sessions, http.StatusInternalServerError, "listings/edit", gin.H{
			"Errors":  map[string]string{"form": "Could not update the listing"},
			"Form":    form,
			"Listing": c.withLogoURL(*listing),
		})
		return
	}

	// a replaced logo leaves the old file orphaned; remove it best-effort
	if logo != nil && listing.Logo != nil && *listing.Logo != *logo {
		if err := c.files.DeleteFile(*listing.Logo); err != nil {
			log.Error().Err(err).Str("path", *listing.Logo).Msg("failed to remove replaced logo")
		}
	}

	redirectWithFlash(ctx, c.sessions, "/", "Listing updated successfully!")
}

// DELETE /listings/:id
func (c *ListingController) destroy(ctx *gin.Context, user *model.User) {
	listing, ok := c.lookupOwned(ctx, user)
	if !ok {
		return
	}

	if err := c.store.DeleteListing(listing.ID); err != nil {
		render(ctx, c.sessions, http.StatusInternalServerError, "errors/500", nil)
		return
	}

	if listing.Logo != nil {
		if err := c.files.DeleteFile(*listing.Logo); err != nil {
			log.Error().Err(err).Str("path", *listing.Logo).Msg("failed to remove logo of deleted listing")
		}
	}

	redirectWithFlash(ctx, c.sessions, "/", "Listing deleted successfully")
}

// lookup parses :id and loads the listing, rendering 404 on failure.
func (c *ListingController) lookup(ctx *gin.Context) (*model.Listing, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		render(ctx, c.sessions, http.StatusNotFound, "errors/404", nil)
		return nil, false
	}

	listing, err := c.store.GetListingByID(id)
	if errors.Is(err, sql.ErrNoRows) {
		render(ctx, c.sessions, http.StatusNotFound, "errors/404", nil)
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Int("listing", id).Msg("failed to load listing")
		render(ctx, c.sessions, http.StatusInternalServerError, "errors/500", nil)
		return nil, false
	}
	return listing, true
}

// lookupOwned additionally refuses anyone but the owner.
func (c *ListingController) lookupOwned(ctx *gin.Context, user *model.User) (*model.Listing, bool) {
	listing, ok := c.lookup(ctx)
	if !ok {
		return nil, false
	}

	if listing.UserID != user.ID {
		log.Warn().Int("owner", listing.UserID).Int("user", user.ID).Msg("refused non-owner listing mutation")
		render(ctx, c.sessions, http.StatusForbidden, "errors/403", nil)
		return nil, false
	}
	return listing, true
}

// saveLogo stores an uploaded logo if one was submitted. Returns nil with
// ok=true when the form carried no file.
func (c *ListingController) saveLogo(ctx *gin.Context) (*string, bool) {
	fileHeader, err := ctx.FormFile("logo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		log.Error().Err(err).Msg("failed to read logo upload")
		return nil, false
	}

	stored, err := c.files.SaveFile(fileHeader, "logos")
	if err != nil {
		log.Error().Err(err).Msg("failed to save logo upload")
		return nil, false
	}
	return &stored, true
}

// listingView pairs a listing with its public logo URL for templates.
type listingView struct {
	model.Listing
	LogoURL string
}

func (c *ListingController) withLogoURL(l model.Listing) listingView {
	v := listingView{Listing: l}
	if l.Logo != nil {
		v.LogoURL = c.files.PublicURL(*l.Logo)
	}
	return v
}

func (c *ListingController) withLogoURLs(all []model.Listing) []listingView {
	out := make([]listingView, 0, len(all))
	for _, l := range all {
		out = append(out, c.withLogoURL(l))
	}
	return out
}
