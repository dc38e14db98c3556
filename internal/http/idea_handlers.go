package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mindnest/backend/internal/review"
	"github.com/mindnest/backend/internal/store"
)

type createIdeaInput struct {
	Title        string  `json:"title"`
	Pitch        string  `json:"pitch"`
	Description  string  `json:"description"`
	DemoLink     *string `json:"demoLink"`
	PitchDeckURL *string `json:"pitchDeckUrl"`
	PptURL       *string `json:"ppt_Url"`
}

type statusInput struct {
	Status string `json:"status" binding:"required"`
}
type scoreInput struct {
	Score *int `json:"score" binding:"required"`
}
type fundingInput struct {
	FundingAmount *int `json:"fundingAmount" binding:"required"`
}
type noteInput struct {
	Note string `json:"note"`
}
type tagsInput struct {
	Tags []string `json:"tags"`
}

func (e *Env) CreateIdea(c *gin.Context) {
	var in createIdeaInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	owner := currentUser(c)
	ownerID := owner.ID
	idea, err := e.Ideas.Create(c.Request.Context(), &ownerID, store.CreateIdeaInput{
		Title:        in.Title,
		Pitch:        in.Pitch,
		Description:  in.Description,
		DemoLink:     in.DemoLink,
		PitchDeckURL: in.PitchDeckURL,
		PptURL:       in.PptURL,
	})
	if err != nil {
		e.fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "idea created successfully", idea)
}

func (e *Env) ListIdeas(c *gin.Context) {
	ideas, err := e.Ideas.ListAll(c.Request.Context())
	if err != nil {
		e.fail(c, err)
		return
	}
	ok(c, http.StatusOK, "success", ideas)
}

func (e *Env) GetIdea(c *gin.Context) {
	idea, err := e.Ideas.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		e.fail(c, err)
		return
	}
	ok(c, http.StatusOK, "success", idea)
}

func (e *Env) MyIdeas(c *gin.Context) {
	ideas, err := e.Ideas.ListByOwner(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		e.fail(c, err)
		return
	}
	ok(c, http.StatusOK, "success", ideas)
}

// UpdateIdeaStatus checks the transition table before writing. A same-status
// request succeeds without a write.
func (e *Env) UpdateIdeaStatus(c *gin.Context) {
	var in statusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "status is required"})
		return
	}
	if !review.Valid(in.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown status value"})
		return
	}

	idea, err := e.Ideas.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		e.fail(c, err)
		return
	}
	if idea.Status == in.Status {
		ok(c, http.StatusOK, "status unchanged", idea)
		return
	}
	if !review.Allowed(idea.Status, in.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid status transition"})
		return
	}

	idea, err = e.Ideas.UpdateStatus(c.Request.Context(), idea.ID, in.Status)
	if err != nil {
		e.fail(c, err)
		return
	}
	ok(c, http.StatusOK, "status updated successfully", idea)
}

func (e *Env) UpdateIdeaScore(c *gin.Context) {
	var in scoreInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "score is required"})
		return
	}
	idea, err := e.Ideas.UpdateScore(c.Request.Context(), c.Param("id"), *in.Score)
	if err != nil {
		e.fail(c, err)
		return
	}
	ok(c, http.StatusOK, "score updated successfully", idea)
}

func (e *Env) UpdateIdeaFunding(c *gin.Context) {
	var in fundingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "fundingAmount is required"})
		return
	}
	idea, err := e.Ideas.UpdateFundingAmount(c.Request.Context(), c.Param("id"), *in.FundingAmount)
	if err != nil {
		e.fail(c, err)
		return
	}
	ok(c, http.StatusOK, "funding amount updated successfully", idea)
}

func (e *Env) UpdateIdeaNote(c *gin.Context) {
	var in noteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	idea, err := e.Ideas.UpdateNote(c.Request.Context(), c.Param("id"), in.Note)
	if err != nil {
		e.fail(c, err)
		return
	}
	ok(c, http.StatusOK, "note updated successfully", idea)
}

func (e *Env) UpdateIdeaTags(c *gin.Context) {
	var in tagsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	idea, err := e.Ideas.UpdateTags(c.Request.Context(), c.Param("id"), in.Tags)
	if err != nil {
		e.fail(c, err)
		return
	}
	ok(c, http.StatusOK, "tags updated successfully", idea)
}
