package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/wordman/wordman/internal/game"
	"github.com/wordman/wordman/internal/input"
)

var (
	styleText    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorMediumPurple).Bold(true)
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleWin     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleLoss    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleMiss    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleCorrect = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// segment is a run of text in one style.
type segment struct {
	text  string
	style tcell.Style
}

// line is one row of the screen.
type line []segment

func (l line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.text)
	}
	return b.String()
}

func plain(text string, style tcell.Style) line {
	return line{{text: text, style: style}}
}

// layout turns a view into screen rows, top to bottom.
func layout(v game.View) []line {
	out := []line{
		plain("WORDMAN", styleTitle),
		plain(fmt.Sprintf("Wins %d   Loss %d   Skipped %d   Hints %d",
			v.Score.Wins, v.Score.Losses, v.Score.Skips, v.HintsRemaining), styleText),
		{},
	}

	if v.Phase == game.PhaseNotStarted {
		if len(v.Letters) > 0 {
			out = append(out, wordLine(v), line{})
		}
		out = append(out, plain("Press Enter to start", styleText))
	} else {
		out = append(out,
			plain("Category: "+v.Category, styleText),
			wordLine(v),
			line{},
			missLine(v),
		)
	}

	switch v.Phase {
	case game.PhaseWon:
		out = append(out, line{}, plain("Yay! You have Won. The word is "+strings.ToUpper(v.Word), styleWin))
	case game.PhaseLost:
		out = append(out, line{}, plain("You have Lost. Let's try again! The word is "+strings.ToUpper(v.Word), styleLoss))
	}

	out = append(out, line{})
	for _, row := range input.Keyboard(v) {
		out = append(out, keyboardLine(row))
	}
	out = append(out, line{}, plain(controls(v.Phase), styleDim))
	return out
}

// wordLine draws one box per letter; hidden letters are underscores.
func wordLine(v game.View) line {
	var l line
	for _, lv := range v.Letters {
		text := " _ "
		if lv.Revealed {
			text = " " + strings.ToUpper(lv.Letter) + " "
		}
		l = append(l, segment{text: text, style: styleText})
	}
	return l
}

// missLine shows misses left and one slot per allowed miss.
func missLine(v game.View) line {
	l := line{{text: fmt.Sprintf("Guesses left: %-3d", v.MissesLeft), style: styleText}}
	for i := 0; i < v.MaxIncorrect; i++ {
		if i < v.Incorrect {
			l = append(l, segment{text: "●", style: styleMiss})
		} else {
			l = append(l, segment{text: "○", style: styleDim})
		}
	}
	return l
}

func keyboardLine(row []input.Key) line {
	var l line
	for _, k := range row {
		style := styleText
		switch k.State {
		case input.KeyCorrect:
			style = styleCorrect
		case input.KeyWrong:
			style = styleDim
		}
		l = append(l, segment{text: " " + strings.ToUpper(k.Letter) + " ", style: style})
	}
	return l
}

func controls(p game.Phase) string {
	switch p {
	case game.PhaseInProgress:
		return "[a-z] Guess   [1] Hint   [2] Skip   [Esc] Quit"
	case game.PhaseNotStarted:
		return "[Enter] Start   [Esc] Quit"
	default:
		return "[Enter] New Game   [Esc] Quit"
	}
}
