package calc

import "fmt"

// Announcer receives short phrases to speak. It must not block.
type Announcer interface {
	Announce(text string)
}

type nopAnnouncer struct{}

func (nopAnnouncer) Announce(string) {}

// Spoken phrases.
const (
	phraseClear       = "清空"
	phraseDecimal     = "点"
	phraseArmRecall   = "准备调用"
	phraseArmDelete   = "准备删除"
	phraseClearAll    = "全部清除"
	phraseCapacity    = "算力不够"
	phraseEvalFailure = "计算出错"
)

var operatorPhrases = map[Key]string{
	KeyAdd: "加",
	KeySub: "减",
	KeyMul: "乘",
	KeyDiv: "除",
}

func phraseRecalled(index int) string { return fmt.Sprintf("调出数值%d", index) }
func phraseDeleted(index int) string  { return fmt.Sprintf("删除数值%d", index) }
func phraseSaved(index int) string    { return fmt.Sprintf("已保存为F%d", index) }
func phraseEquals(result string) string {
	return "等于 " + result
}
