package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/xinyue-studio/salon-manager/backend/internal/config"
	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
	"github.com/xinyue-studio/salon-manager/backend/internal/repository"
	"github.com/xinyue-studio/salon-manager/backend/internal/schedule"
	"github.com/xinyue-studio/salon-manager/backend/internal/utils"
)

// 为一批员工插入随机周班表，走排班引擎以保证时间段互不重叠
func SeedWeeklySchedules(repo schedule.WeeklyScheduleRepository, staffList []*domain.Staff) int {
	store := schedule.NewWeeklyScheduleStore(repo)

	cnt := 0
	for _, staff := range staffList {
		for _, ws := range utils.GenerateRandomWeeklySchedules() {
			interval, err := schedule.ParseInterval(ws.StartTime, ws.EndTime)
			if err != nil {
				slog.Error("无法解析随机时间段", "error", err)
				continue
			}

			if _, err := store.Create(staff.ID, ws.DayOfWeek, interval); err != nil {
				slog.Error("无法插入班表记录", "error", err)
				continue
			}

			cnt++
		}
	}

	return cnt
}

// 为一批员工在未来 days 天内插入随机例外，和已有记录冲突的直接跳过
func SeedExceptions(repo schedule.ExceptionRepository, staffList []*domain.Staff, days int) int {
	store := schedule.NewExceptionStore(repo)

	cnt := 0
	for _, staff := range staffList {
		// days 可以小到 1，除法结果为 0 时 rand.Intn 会 panic
		n := rand.Intn(max(days/2, 1)) + 1
		for i := 0; i < n; i++ {
			date := time.Now().AddDate(0, 0, rand.Intn(days)+1).Format("2006-01-02")
			exception := utils.GenerateRandomException(date)

			var interval *schedule.Interval
			if !exception.AllDay {
				parsed, err := schedule.ParseInterval(*exception.StartTime, *exception.EndTime)
				if err != nil {
					slog.Error("无法解析随机时间段", "error", err)
					continue
				}
				interval = &parsed
			}

			if _, err := store.Create(staff.ID, exception.Date, exception.AllDay, interval, exception.Cause, exception.Description); err != nil {
				slog.Warn("跳过冲突的例外记录", "date", exception.Date, "error", err)
				continue
			}

			cnt++
		}
	}

	return cnt
}

// 插入一套完整的演示数据：员工、服务项目、周班表和例外记录
func SeedDemoData(cfg *config.Config, repo *repository.Repository, staffNum int, serviceNum int) {
	staffList := make([]*domain.Staff, 0, staffNum)
	for i := 0; i < staffNum; i++ {
		staff, err := utils.GenerateRandomStaff(cfg.Seed.Staff.Password, cfg.Email.StaffDomain)
		if err != nil {
			slog.Error("无法生成随机员工", "error", err)
			continue
		}

		if err := repo.CreateStaff(staff); err != nil {
			slog.Error("无法插入员工", "error", err)
			continue
		}

		staffList = append(staffList, staff)
	}
	slog.Info("插入员工成功", "count", len(staffList))

	serviceCnt := 0
	for i := 0; i < serviceNum; i++ {
		if err := repo.CreateSalonService(utils.GenerateRandomSalonService()); err != nil {
			slog.Error("无法插入服务项目", "error", err)
			continue
		}
		serviceCnt++
	}
	slog.Info("插入服务项目成功", "count", serviceCnt)

	slog.Info("插入班表记录成功", "count", SeedWeeklySchedules(repo, staffList))
	slog.Info("插入例外记录成功", "count", SeedExceptions(repo, staffList, 14))
}
