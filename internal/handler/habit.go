package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jrabinat-art/agenda/internal/models"
	"github.com/jrabinat-art/agenda/internal/schedule"
	"github.com/jrabinat-art/agenda/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HabitHandler serves the habit tracker dashboard: habit CRUD, daily log
// upserts and the due/progress views built on the schedule package.
type HabitHandler struct {
	DB *gorm.DB
}

func NewHabitHandler(db *gorm.DB) *HabitHandler {
	return &HabitHandler{DB: db}
}

// ---------- request/response structs ----------

type habitReq struct {
	Name         string  `json:"name" binding:"required,max=128"`
	ScheduleType string  `json:"schedule_type" binding:"required,oneof=daily weekdays monthly"`
	Weekdays     string  `json:"weekdays" binding:"max=32"`
	MeasureType  string  `json:"measure_type" binding:"required,oneof=boolean numeric"`
	TargetCount  int     `json:"target_count" binding:"gte=0"`
	TargetValue  float64 `json:"target_value" binding:"gte=0"`
}

type habitResp struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	ScheduleType string  `json:"schedule_type"`
	Weekdays     string  `json:"weekdays,omitempty"`
	MeasureType  string  `json:"measure_type"`
	TargetCount  int     `json:"target_count"`
	TargetValue  float64 `json:"target_value"`
	Active       bool    `json:"active"`
}

func toHabitResp(h *models.Habit) habitResp {
	return habitResp{
		ID:           h.ID,
		Name:         h.Name,
		ScheduleType: h.ScheduleType,
		Weekdays:     h.Weekdays,
		MeasureType:  h.MeasureType,
		TargetCount:  h.TargetCount,
		TargetValue:  h.TargetValue,
		Active:       h.Active,
	}
}

type habitLogResp struct {
	Date  string  `json:"date"`
	Done  bool    `json:"done"`
	Value float64 `json:"value"`
}

// checkHabitReq validates the parts of a habit request that binding tags
// can't express: the weekdays mask belongs to the weekdays schedule only.
func checkHabitReq(c *gin.Context, req *habitReq) bool {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "name is required")
		return false
	}
	if req.ScheduleType == models.ScheduleWeekdays {
		if err := util.ValidateWeekdaysMask(req.Weekdays); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "weekdays mask must be 7 comma-separated 0/1 entries, Monday first")
			return false
		}
	} else {
		req.Weekdays = ""
	}
	return true
}

// findHabit loads one of the user's habits, writing the error envelope on
// failure.
func (h *HabitHandler) findHabit(c *gin.Context, userID uint) (*models.Habit, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return nil, false
	}

	var habit models.Habit
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).First(&habit).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "habit not found")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load habit")
		}
		return nil, false
	}
	return &habit, true
}

// ---------- habit CRUD ----------

func (h *HabitHandler) CreateHabit(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req habitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if !checkHabitReq(c, &req) {
		return
	}

	habit := models.Habit{
		UserID:       user.ID,
		Name:         req.Name,
		ScheduleType: req.ScheduleType,
		Weekdays:     req.Weekdays,
		MeasureType:  req.MeasureType,
		TargetCount:  req.TargetCount,
		TargetValue:  req.TargetValue,
		Active:       true,
	}
	if err := h.DB.Create(&habit).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save habit")
		return
	}

	util.Success(c, util.Response{
		"habit": toHabitResp(&habit),
	})
}

func (h *HabitHandler) ListHabits(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var habits []models.Habit
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("id ASC").
		Find(&habits).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load habits")
		return
	}

	items := make([]habitResp, 0, len(habits))
	for i := range habits {
		items = append(items, toHabitResp(&habits[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	var req habitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if !checkHabitReq(c, &req) {
		return
	}

	habit, ok := h.findHabit(c, user.ID)
	if !ok {
		return
	}

	habit.Name = req.Name
	habit.ScheduleType = req.ScheduleType
	habit.Weekdays = req.Weekdays
	habit.MeasureType = req.MeasureType
	habit.TargetCount = req.TargetCount
	habit.TargetValue = req.TargetValue

	if err := h.DB.Save(habit).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save habit")
		return
	}

	util.Success(c, util.Response{
		"habit": toHabitResp(habit),
	})
}

// ToggleHabit flips the active flag; inactive habits keep their logs but
// disappear from the today view.
func (h *HabitHandler) ToggleHabit(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	habit, ok := h.findHabit(c, user.ID)
	if !ok {
		return
	}

	habit.Active = !habit.Active
	if err := h.DB.Model(habit).Update("active", habit.Active).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save habit")
		return
	}

	util.Success(c, util.Response{
		"habit": toHabitResp(habit),
	})
}

// DeleteHabit removes a habit and its logs in one transaction.
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	habit, ok := h.findHabit(c, user.ID)
	if !ok {
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", habit.ID).Delete(&models.HabitLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(habit).Error
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to delete habit")
		return
	}

	util.Success(c, util.Response{
		"message": "deleted",
	})
}

// ---------- log upsert ----------

type upsertLogReq struct {
	Date  string  `json:"date" binding:"omitempty"`
	Done  bool    `json:"done"`
	Value float64 `json:"value" binding:"gte=0"`
}

// UpsertLog writes the single log row for (habit, date). A second write for
// the same day replaces done and value wholesale; there is no partial-field
// update.
func (h *HabitHandler) UpsertLog(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	habit, ok := h.findHabit(c, user.ID)
	if !ok {
		return
	}

	var req upsertLogReq
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	date := req.Date
	if date == "" {
		date = time.Now().Format(schedule.DayFormat)
	} else if err := util.ValidateDate(date); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date must be YYYY-MM-DD")
		return
	}

	logRow, err := upsertHabitLog(h.DB, habit.ID, date, req.Done, req.Value)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to save log")
		return
	}

	progress, err := monthlyProgress(h.DB, habit, mustParseDay(date))
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute progress")
		return
	}

	util.Success(c, util.Response{
		"log": habitLogResp{
			Date:  date,
			Done:  logRow.Done,
			Value: logRow.Value,
		},
		"month_progress": progress,
	})
}

// ---------- views ----------

type todayItemResp struct {
	Habit         habitResp     `json:"habit"`
	Log           *habitLogResp `json:"log,omitempty"`
	MonthProgress float64       `json:"month_progress"`
}

// Today returns every active habit due on the requested date (default:
// today), each with the day's log and its running monthly progress.
func (h *HabitHandler) Today(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	dateStr := c.DefaultQuery("date", time.Now().Format(schedule.DayFormat))
	if err := util.ValidateDate(dateStr); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "date must be YYYY-MM-DD")
		return
	}
	day := mustParseDay(dateStr)

	var habits []models.Habit
	if err := h.DB.Where("user_id = ? AND active = ?", user.ID, true).
		Order("id ASC").
		Find(&habits).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load habits")
		return
	}

	items := make([]todayItemResp, 0, len(habits))
	for i := range habits {
		habit := &habits[i]
		if !schedule.DueOn(habit.ScheduleType, habit.Weekdays, day) {
			continue
		}

		item := todayItemResp{Habit: toHabitResp(habit)}

		var logRow models.HabitLog
		err := h.DB.Where("habit_id = ? AND log_date = ?", habit.ID, dateStr).First(&logRow).Error
		switch {
		case err == nil:
			item.Log = &habitLogResp{Date: logRow.LogDate, Done: logRow.Done, Value: logRow.Value}
		case err == gorm.ErrRecordNotFound:
			// nothing logged yet today
		default:
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load logs")
			return
		}

		progress, err := monthlyProgress(h.DB, habit, day)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute progress")
			return
		}
		item.MonthProgress = progress

		items = append(items, item)
	}

	util.Success(c, util.Response{
		"date":  dateStr,
		"items": items,
	})
}

// Progress returns one habit's logs and cumulative progress for a month
// (?month=YYYY-MM, default the current month).
func (h *HabitHandler) Progress(c *gin.Context) {
	user, ok := getCurrentUser(c)
	if !ok {
		return
	}

	habit, ok := h.findHabit(c, user.ID)
	if !ok {
		return
	}

	monthStr := c.DefaultQuery("month", time.Now().Format("2006-01"))
	if err := util.ValidateMonth(monthStr); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "month must be YYYY-MM")
		return
	}
	ref, _ := time.Parse("2006-01", monthStr)

	first, last := schedule.MonthRange(ref)

	var logs []models.HabitLog
	if err := h.DB.Where("habit_id = ? AND log_date >= ? AND log_date <= ?",
		habit.ID, first.Format(schedule.DayFormat), last.Format(schedule.DayFormat)).
		Order("log_date ASC").
		Find(&logs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load logs")
		return
	}

	logItems := make([]habitLogResp, 0, len(logs))
	for i := range logs {
		logItems = append(logItems, habitLogResp{
			Date:  logs[i].LogDate,
			Done:  logs[i].Done,
			Value: logs[i].Value,
		})
	}

	progress, err := monthlyProgress(h.DB, habit, ref)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to compute progress")
		return
	}

	util.Success(c, util.Response{
		"habit":    toHabitResp(habit),
		"month":    monthStr,
		"from":     first.Format(schedule.DayFormat),
		"to":       last.Format(schedule.DayFormat),
		"logs":     logItems,
		"progress": progress,
	})
}

// ---------- aggregation and upsert ----------

// upsertHabitLog writes the one log row for (habitID, date). On conflict the
// existing row's done and value are replaced wholesale; last writer wins.
func upsertHabitLog(db *gorm.DB, habitID uint, date string, done bool, value float64) (*models.HabitLog, error) {
	logRow := models.HabitLog{
		HabitID: habitID,
		LogDate: date,
		Done:    done,
		Value:   value,
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "habit_id"}, {Name: "log_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"done", "value", "updated_at"}),
	}).Create(&logRow).Error
	if err != nil {
		return nil, err
	}
	return &logRow, nil
}

// monthlyProgress computes cumulative progress for ref's calendar month:
// boolean habits count days logged done, numeric habits sum the logged
// values. Missing rows contribute nothing; an empty month is 0. Progress is
// never capped at the target, over-achieving simply shows through.
func monthlyProgress(db *gorm.DB, habit *models.Habit, ref time.Time) (float64, error) {
	first, last := schedule.MonthRange(ref)
	q := db.Model(&models.HabitLog{}).Where(
		"habit_id = ? AND log_date >= ? AND log_date <= ?",
		habit.ID, first.Format(schedule.DayFormat), last.Format(schedule.DayFormat))

	switch habit.MeasureType {
	case models.MeasureBoolean:
		var n int64
		if err := q.Where("done = ?", true).Count(&n).Error; err != nil {
			return 0, err
		}
		return float64(n), nil
	case models.MeasureNumeric:
		var sum float64
		if err := q.Select("COALESCE(SUM(value), 0)").Scan(&sum).Error; err != nil {
			return 0, err
		}
		return sum, nil
	default:
		return 0, nil
	}
}

// mustParseDay parses a date already validated with util.ValidateDate.
func mustParseDay(dateStr string) time.Time {
	t, _ := time.Parse(schedule.DayFormat, dateStr)
	return t
}
