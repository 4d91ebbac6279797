package layout

// LengthUnit is the unit of a Length handed to the flex solver.
type LengthUnit int

const (
	// LengthUnset leaves the property at the solver's default.
	LengthUnset LengthUnit = iota
	LengthPixels
	LengthPercent
	LengthAuto
)

// Length is a resolved style length: pixels, percent of the parent, or auto.
type Length struct {
	Value float64
	Unit  LengthUnit
}

// Px returns a pixel length.
func Px(v float64) Length { return Length{Value: v, Unit: LengthPixels} }

// Pct returns a percent length.
func Pct(v float64) Length { return Length{Value: v, Unit: LengthPercent} }

// Auto returns the auto length.
func Auto() Length { return Length{Unit: LengthAuto} }

// IsSet reports whether l overrides the solver default.
func (l Length) IsSet() bool { return l.Unit != LengthUnset }

// Edges holds per-edge lengths. Specific edges override All.
type Edges struct {
	All    Length
	Start  Length
	End    Length
	Top    Length
	Bottom Length
}

// Number is an optional scalar style value.
type Number struct {
	Value float64
	Set   bool
}

// Num returns a set Number.
func Num(v float64) Number { return Number{Value: v, Set: true} }

type FlexDirection int

const (
	FlexDirectionUnset FlexDirection = iota
	FlexDirectionRow
	FlexDirectionColumn
)

type FlexWrap int

const (
	FlexWrapUnset FlexWrap = iota
	FlexWrapNoWrap
	FlexWrapWrap
	FlexWrapReverse
)

type Align int

const (
	AlignUnset Align = iota
	AlignAuto
	AlignFlexStart
	AlignCenter
	AlignFlexEnd
	AlignStretch
	AlignSpaceBetween
	AlignSpaceAround
)

type Justify int

const (
	JustifyUnset Justify = iota
	JustifyFlexStart
	JustifyCenter
	JustifyFlexEnd
	JustifySpaceBetween
	JustifySpaceAround
)

type PositionType int

const (
	PositionUnset PositionType = iota
	PositionRelative
	PositionAbsolute
)

// Document spellings of the enumerated style values.
var (
	FlexDirectionNames = map[string]FlexDirection{
		"row":    FlexDirectionRow,
		"column": FlexDirectionColumn,
	}
	FlexWrapNames = map[string]FlexWrap{
		"nowrap":       FlexWrapNoWrap,
		"wrap":         FlexWrapWrap,
		"wrap-reverse": FlexWrapReverse,
	}
	AlignItemsNames = map[string]Align{
		"stretch":    AlignStretch,
		"flex-start": AlignFlexStart,
		"flex-end":   AlignFlexEnd,
		"center":     AlignCenter,
	}
	AlignContentNames = map[string]Align{
		"stretch":       AlignStretch,
		"flex-start":    AlignFlexStart,
		"flex-end":      AlignFlexEnd,
		"center":        AlignCenter,
		"space-between": AlignSpaceBetween,
		"space-around":  AlignSpaceAround,
	}
	AlignSelfNames = map[string]Align{
		"auto":       AlignAuto,
		"stretch":    AlignStretch,
		"flex-start": AlignFlexStart,
		"flex-end":   AlignFlexEnd,
		"center":     AlignCenter,
	}
	JustifyNames = map[string]Justify{
		"flex-start":    JustifyFlexStart,
		"center":        JustifyCenter,
		"flex-end":      JustifyFlexEnd,
		"space-between": JustifySpaceBetween,
		"space-around":  JustifySpaceAround,
	}
	PositionTypeNames = map[string]PositionType{
		"relative": PositionRelative,
		"absolute": PositionAbsolute,
	}
)

// ContainerStyle is how a flex container arranges its children.
// Zero fields keep the solver defaults.
type ContainerStyle struct {
	FlexDirection  FlexDirection
	FlexWrap       FlexWrap
	AlignItems     Align
	AlignContent   Align
	JustifyContent Justify
	Padding        Edges
}

// ItemStyle is how one child sits inside its flex container.
// Zero fields keep the solver defaults.
type ItemStyle struct {
	PositionType PositionType
	Position     Edges
	Margin       Edges
	Width        Length
	MinWidth     Length
	MaxWidth     Length
	Height       Length
	MinHeight    Length
	MaxHeight    Length
	FlexGrow     Number
	FlexShrink   Number
	FlexBasis    Length
	AlignSelf    Align
	AspectRatio  Number
}
