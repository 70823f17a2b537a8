package service

import (
	"fmt"
	"math/rand"
)

// Randomizer 随机源，返回 [0, n) 内的整数
type Randomizer interface {
	Intn(n int) int
}

type defaultRandomizer struct{}

func (defaultRandomizer) Intn(n int) int { return rand.Intn(n) }

// DefaultRandomizer 进程级默认随机源
var DefaultRandomizer Randomizer = defaultRandomizer{}

var motivationalMessages = []string{
	"You're stronger than you think! Push through and conquer this week!",
	"Every workout brings you closer to your goals. Let's make it count!",
	"Believe in yourself and all that you are. This week is your week!",
	"Success is the sum of small efforts repeated day in and day out. Keep going!",
	"Your only limit is you. Break through barriers this week!",
	"The pain you feel today will be the strength you feel tomorrow!",
	"Don't stop when you're tired. Stop when you're done!",
	"Make this week count! Your future self will thank you.",
	"Champions are made when no one is watching. Give it your all!",
	"The harder you work, the luckier you get. Let's do this!",
}

const welcomeMessage = "Welcome to your training journey! Let's start strong and build momentum!"

// MotivationalMessage 按周次选择激励语
// 第 1 周固定欢迎语；4 的倍数周固定里程碑语；其余从消息池中随机选取
func MotivationalMessage(weekNumber int, rnd Randomizer) string {
	if weekNumber == 1 {
		return welcomeMessage
	}
	if weekNumber > 0 && weekNumber%4 == 0 {
		return fmt.Sprintf("Week %d - You've made it this far! Keep the consistency going!", weekNumber)
	}
	if rnd == nil {
		rnd = DefaultRandomizer
	}
	return motivationalMessages[rnd.Intn(len(motivationalMessages))]
}

// 教练反馈分档
const (
	feedbackOutstanding = "Outstanding work this week! You're crushing your goals!"
	feedbackGreat       = "Great effort this week! Keep up the momentum!"
	feedbackGood        = "Good progress! Let's aim for more consistency next week."
	feedbackRefocus     = "Let's refocus and make next week stronger. You've got this!"
)

// TrainerFeedback 按完成百分比选择反馈文案
func TrainerFeedback(percentage float64) string {
	switch {
	case percentage >= 90:
		return feedbackOutstanding
	case percentage >= 70:
		return feedbackGreat
	case percentage >= 50:
		return feedbackGood
	default:
		return feedbackRefocus
	}
}
