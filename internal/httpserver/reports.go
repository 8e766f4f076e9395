package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func monthlySummaryHandler(svc ReportService) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, err := strconv.Atoi(c.Query("year"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year and month are required"})
			return
		}
		month, err := strconv.Atoi(c.Query("month"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year and month are required"})
			return
		}

		summary, err := svc.Summarize(c.Request.Context(), year, month)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
