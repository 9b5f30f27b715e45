package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return uint(id), nil
}

// queryIDs parses a comma separated id list such as ?ids=1,2,3
func queryIDs(c *gin.Context, key string) ([]uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, fmt.Errorf("%s is required", key)
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("invalid id %q in %s", part, key)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

// dateRange reads begin and end (YYYY-MM-DD) as local dates in loc
func dateRange(c *gin.Context, loc *time.Location) (time.Time, time.Time, error) {
	begin, err := time.ParseInLocation(dateLayout, c.Query("begin"), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("begin must be a date like 2006-01-02")
	}
	end, err := time.ParseInLocation(dateLayout, c.Query("end"), loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end must be a date like 2006-01-02")
	}
	if begin.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("begin must not be after end")
	}
	return begin, end, nil
}

const dateLayout = "2006-01-02"
