package models

// Mode определяет, какой ключ API используется: боевой или тестовый.
type Mode string

const (
	ModeLive Mode = "live"
	ModeTest Mode = "test"
)

// ModeFromFlag возвращает ModeTest, если выставлен флаг --test, иначе ModeLive.
func ModeFromFlag(test bool) Mode {
	if test {
		return ModeTest
	}
	return ModeLive
}

func (m Mode) String() string {
	return string(m)
}
