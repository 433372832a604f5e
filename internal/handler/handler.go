package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/xinyue-studio/salon-manager/backend/internal/config"
	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
	"github.com/xinyue-studio/salon-manager/backend/internal/repository"
	"github.com/xinyue-studio/salon-manager/backend/internal/schedule"
)

type Handler struct {
	validate       *validator.Validate
	config         *config.Config
	repository     *repository.Repository
	weeklyStore    *schedule.WeeklyScheduleStore
	exceptionStore *schedule.ExceptionStore
	translator     ut.Translator
	mailChannel    *amqp.Channel
	redisClient    *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:       validate,
		config:         cfg,
		repository:     repo,
		weeklyStore:    schedule.NewWeeklyScheduleStore(repo),
		exceptionStore: schedule.NewExceptionStore(repo),
		translator:     trans,
		mailChannel:    mailCh,
		redisClient:    rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// 以下 API 必须要在登录后才允许调用
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/staff", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateStaff)
			r.Get("/", h.GetAllStaffInfo) // 所有员工都可以看同事的基本信息
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.staffInfo)
				r.Get("/", h.GetStaffInfo)
				r.With(h.preventOperateInitialManager).With(h.RequiredRole([]domain.Role{domain.RoleManager})).Patch("/", h.UpdateStaff)
				r.With(h.preventOperateInitialManager).With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteStaff)

				// 周班表与可用性查询：查看对所有员工开放，改动只允许店长
				r.Route("/schedule", func(r chi.Router) {
					r.Get("/", h.GetStaffSchedule)
					r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateStaffSchedule)
					r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Patch("/{scheduleID}", h.UpdateStaffSchedule)
					r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/{scheduleID}", h.DeleteStaffSchedule)
				})
				r.Get("/availability", h.GetStaffAvailability)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Get("/exceptions", h.GetStaffExceptions)
			})
		})

		r.Route("/services", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Post("/", h.CreateSalonService)
			r.Get("/", h.GetAllSalonServices)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.salonService)
				r.Get("/", h.GetSalonService)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Patch("/", h.UpdateSalonService)
				r.With(h.RequiredRole([]domain.Role{domain.RoleManager})).Delete("/", h.DeleteSalonService)
			})
		})

		// 员工维护自己的周班表
		r.Route("/my-schedule", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Use(h.preventInactiveStaff)
			r.Get("/", h.GetMySchedule)
			r.Post("/", h.CreateMySchedule)
			r.Patch("/{scheduleID}", h.UpdateMySchedule)
			r.Delete("/{scheduleID}", h.DeleteMySchedule)
		})

		// 员工维护自己的日期例外
		r.Route("/my-exceptions", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Use(h.preventInactiveStaff)
			r.Get("/", h.GetMyExceptions)
			r.Post("/", h.CreateMyException)
			r.Post("/bulk", h.CreateMyExceptionsBulk)
			r.Patch("/{exceptionID}", h.UpdateMyException)
			r.Delete("/{exceptionID}", h.DeleteMyException)
		})
	})
}
