package handler

import (
	"net/http"
	"strconv"

	"crimewatch/backend/internal/models"
	"crimewatch/backend/internal/report"

	"github.com/gin-gonic/gin"
)

// SubmitReport files a new crime report and routes it to authorities.
func (h *Handler) SubmitReport(c *gin.Context) {
	var in report.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Reports.Submit(c.Request.Context(), caller(c), in)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Crime reported successfully",
		"report_id":    result.ReportID,
		"complaint_id": result.ComplaintID,
		"severity_analysis": gin.H{
			"user_severity":  result.UserSeverity,
			"model_severity": result.ModelSeverity,
			"final_severity": result.FinalSeverity,
			"analysis":       result.Judgment,
		},
		"assigned_authority_count": result.AssignedAuthorities,
	})
}

// NearbyCrimes is the public map view of all reports. No identity
// fields are projected here.
func (h *Handler) NearbyCrimes(c *gin.Context) {
	reports, err := h.Reports.ListAll()
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]gin.H, 0, len(reports))
	for _, r := range reports {
		out = append(out, gin.H{
			"id":          r.ID,
			"title":       r.Title,
			"category":    r.Category,
			"description": r.Description,
			"latitude":    r.Latitude,
			"longitude":   r.Longitude,
			"severity":    r.Severity,
			"created_at":  r.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"reports": out})
}

// UserHistory returns the caller's own filed reports.
func (h *Handler) UserHistory(c *gin.Context) {
	reports, err := h.Reports.History(caller(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// CrimesByPincode returns paginated reports for an area. Anonymous
// reporters stay anonymous in the projection.
func (h *Handler) CrimesByPincode(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	reports, total, err := h.Reports.ListByPincode(caller(c), c.Param("pincode"), page, perPage)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]gin.H, 0, len(reports))
	for _, r := range reports {
		out = append(out, gin.H{
			"id":           r.ID,
			"complaint_id": r.ComplaintID,
			"username":     reporterName(&r),
			"title":        r.Title,
			"pincode":      r.Pincode,
			"description":  r.Description,
			"category":     r.Category,
			"severity":     r.Severity,
			"status":       r.Status,
			"location":     gin.H{"latitude": r.Latitude, "longitude": r.Longitude},
			"timestamp":    r.CreatedAt,
			"is_anonymous": r.IsAnonymous,
		})
	}

	c.JSON(http.StatusOK, gin.H{"crimes": out, "total": total, "current_page": page})
}

// AssignedComplaints returns the authority's pending work queue.
func (h *Handler) AssignedComplaints(c *gin.Context) {
	complaints, err := h.Reports.ListAssignedComplaints(caller(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// AcceptComplaint transitions an assignment to accepted.
func (h *Handler) AcceptComplaint(c *gin.Context) {
	h.respondToComplaint(c, report.DecisionAccept)
}

// RejectComplaint transitions an assignment to rejected.
func (h *Handler) RejectComplaint(c *gin.Context) {
	h.respondToComplaint(c, report.DecisionReject)
}

func (h *Handler) respondToComplaint(c *gin.Context, decision report.Decision) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignment id"})
		return
	}

	assignment, err := h.Reports.RespondToAssignment(caller(c), uint(id), decision)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Complaint " + assignment.Status, "assignment": assignment})
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateCrimeStatus moves a report through its lifecycle. Independent
// of the assignment state machine.
func (h *Handler) UpdateCrimeStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	if err := h.Reports.UpdateReportStatus(caller(c), uint(id), req.Status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Crime status updated successfully", "crime_id": id, "new_status": req.Status})
}

func reporterName(r *models.CrimeReport) string {
	if r.IsAnonymous {
		return "Anonymous"
	}
	return r.ReporterName
}
