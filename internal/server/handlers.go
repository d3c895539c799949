package server

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/theirongolddev/sienna/internal/bundle"
	"github.com/theirongolddev/sienna/internal/estimate"
	"github.com/theirongolddev/sienna/internal/intake"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type estimateBody struct {
	Area        decimal.Decimal `json:"area"`
	Tier        string          `json:"tier"`
	Preferences string          `json:"preferences"`
}

func (b estimateBody) request() (estimate.Request, error) {
	tier, err := estimate.ParseTier(b.Tier)
	if err != nil {
		return estimate.Request{}, err
	}
	req := estimate.Request{Area: b.Area, Tier: tier, Preferences: b.Preferences}
	return req, req.Validate()
}

type bundleBody struct {
	ProjectName string           `json:"project_name" binding:"required"`
	Context     string           `json:"context"`
	Area        *decimal.Decimal `json:"area"`
	Tier        string           `json:"tier"`
	Preferences string           `json:"preferences"`
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.Status())
}

func (s *Server) handleCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"entries": s.estimator.Catalog().Entries(),
		"stats":   s.stats,
	})
}

func (s *Server) handleIntake(c *gin.Context) {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, fmt.Errorf("invalid payload: %w", err))
		return
	}
	c.JSON(http.StatusOK, intake.Parse(body.Text))
}

func (s *Server) handleEstimate(c *gin.Context) {
	var body estimateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, fmt.Errorf("invalid payload: %w", err))
		return
	}
	req, err := body.request()
	if err != nil {
		badRequest(c, err)
		return
	}

	res, err := s.estimator.Estimate(req)
	if err != nil {
		badRequest(c, err)
		return
	}

	s.mu.Lock()
	s.estimates++
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"result":    res,
		"breakdown": res.Breakdown(),
	})
}

func (s *Server) handleStructure(c *gin.Context) {
	var body struct {
		Context string `json:"context"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, fmt.Errorf("invalid payload: %w", err))
		return
	}
	tree := s.template.Generate(body.Context)
	c.JSON(http.StatusOK, gin.H{
		"tree":  tree,
		"paths": tree.Paths(),
	})
}

func (s *Server) handleBundle(c *gin.Context) {
	var body bundleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, fmt.Errorf("invalid payload: %w", err))
		return
	}

	var result *estimate.Result
	if body.Area != nil {
		req, err := estimateBody{Area: *body.Area, Tier: body.Tier, Preferences: body.Preferences}.request()
		if err != nil {
			badRequest(c, err)
			return
		}
		res, err := s.estimator.Estimate(req)
		if err != nil {
			badRequest(c, err)
			return
		}
		result = &res
	}

	project := bundle.Project{Name: body.ProjectName, Context: body.Context}
	var buf bytes.Buffer
	man, err := bundle.Write(&buf, project, s.template.Generate(body.Context), result, bundle.Options{})
	if err != nil {
		s.recordError(err)
		s.log.Error("bundle generation failed", "project", body.ProjectName, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bundle generation failed"})
		return
	}

	s.mu.Lock()
	s.bundles++
	s.mu.Unlock()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", project.ArchiveName()))
	c.Header("X-Bundle-Id", man.ID)
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}
