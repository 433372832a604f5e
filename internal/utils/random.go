package utils

import (
	"fmt"
	"math/rand"

	"github.com/mozillazg/go-pinyin"
	"github.com/xinyue-studio/salon-manager/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "勇", "霞", "飞", "玲",
	"超", "华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌",
	"庆", "建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var roles = []domain.Role{
	domain.RoleStylist,
	domain.RoleReceptionist,
	domain.RoleManager,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, pinyin := range pinyinArray {
		length := rand.Intn(len(pinyin)) + 1
		username += pinyin[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomStaff(password string, emailDomainName string) (*domain.Staff, error) {
	fullName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	staff := &domain.Staff{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
		IsActive:     true,
	}

	return staff, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

var serviceNames = []string{
	"精剪造型", "洗剪吹", "染发", "烫发", "头皮护理",
	"接发", "儿童剪发", "修面", "造型设计", "发膜护理",
}

func GenerateRandomSalonService() *domain.SalonService {
	return &domain.SalonService{
		Name:            serviceNames[rand.Intn(len(serviceNames))] + GenerateRandomID(2, 3),
		Description:     "服务描述" + GenerateRandomID(10, 5),
		DurationMinutes: int32(rand.Intn(18)+1) * 15, // 15 分钟到 270 分钟
		PriceCents:      int64(rand.Intn(50)+1) * 1000,
		IsActive:        true,
	}
}

// 随机生成某一天内互不重叠的工作时间段，把一天按段数等分后在每段里取起止时间
func GenerateRandomDayShifts(dayOfWeek int32) []*domain.WeeklySchedule {
	shiftsNum := rand.Intn(3) + 1
	hoursPerShift := 12 / shiftsNum

	shifts := make([]*domain.WeeklySchedule, shiftsNum)
	for i := range shifts {
		startHour := 9 + i*hoursPerShift
		endHour := startHour + rand.Intn(hoursPerShift-1) + 1

		startMinute := rand.Intn(30)    // 0~29
		endMinute := rand.Intn(30) + 30 // 30~59

		shifts[i] = &domain.WeeklySchedule{
			DayOfWeek: dayOfWeek,
			StartTime: fmt.Sprintf("%02d:%02d", startHour, startMinute),
			EndTime:   fmt.Sprintf("%02d:%02d", endHour, endMinute),
		}
	}

	return shifts
}

// 使用 Fisher-Yates 洗牌算法随机挑选工作日
func GenerateRandomWorkingDays() []int32 {
	days := []int32{0, 1, 2, 3, 4, 5, 6}

	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}

	n := rand.Intn(4) + 3 // 每周 3~6 个工作日
	return days[:n]
}

func GenerateRandomWeeklySchedules() []*domain.WeeklySchedule {
	var schedules []*domain.WeeklySchedule
	for _, day := range GenerateRandomWorkingDays() {
		schedules = append(schedules, GenerateRandomDayShifts(day)...)
	}
	return schedules
}

var causes = []domain.ExceptionCause{
	domain.CauseBreak,
	domain.CauseOffSite,
	domain.CauseOther,
}

func GenerateRandomException(date string) *domain.ScheduleException {
	exception := &domain.ScheduleException{
		Date:        date,
		Cause:       causes[rand.Intn(len(causes))],
		Description: "例外说明" + GenerateRandomID(8, 4),
	}

	if rand.Intn(3) == 0 {
		exception.AllDay = true
		return exception
	}

	startHour := rand.Intn(8) + 9
	endHour := startHour + rand.Intn(3) + 1
	startTime := fmt.Sprintf("%02d:00", startHour)
	endTime := fmt.Sprintf("%02d:00", endHour)
	exception.StartTime = &startTime
	exception.EndTime = &endTime

	return exception
}
