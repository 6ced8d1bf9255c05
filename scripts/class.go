package scripts

// Class is the display classification of a script line.
type Class uint8

const (
	ClassPlain Class = iota
	ClassOption
	ClassCondition
	ClassSetter
	ClassCommand
)

func (c Class) String() string {
	switch c {
	case ClassOption:
		return "option"
	case ClassCondition:
		return "condition"
	case ClassSetter:
		return "setter"
	case ClassCommand:
		return "command"
	}
	return "plain"
}

var (
	conditionCommands = map[string]bool{
		"if":     true,
		"elseif": true,
		"elsif":  true,
		"else":   true,
	}

	setterCommands = map[string]bool{
		"set":          true,
		"setref":       true,
		"config":       true,
		"temp":         true,
		"create":       true,
		"temp_array":   true,
		"create_array": true,
	}
)

func Classify(line string) Class {
	if IsChoiceOption(line) {
		return ClassOption
	}
	command, ok := Command(line)
	switch {
	case !ok:
		return ClassPlain
	case conditionCommands[command]:
		return ClassCondition
	case setterCommands[command]:
		return ClassSetter
	}
	return ClassCommand
}

// ShowsValues reports whether variable values are displayed inline for the command.
func ShowsValues(command string) bool {
	if command == "else" {
		return false
	}
	return conditionCommands[command] || setterCommands[command]
}
