package reflow

import (
	"strconv"
	"strings"
)

// literal is a builtin name and the CPython 3 minor version that introduced
// it. since is 0 for names present in every Python 3 release.
type literal struct {
	name  string
	since int
}

// Builtin constants, exceptions and lowercase types of CPython 3.13.
var literals = []literal{
	{name: "None"}, {name: "NoneType"}, {name: "True"}, {name: "False"},

	{name: "ArithmeticError"}, {name: "AssertionError"}, {name: "AttributeError"},
	{name: "BaseException"}, {name: "BaseExceptionGroup", since: 11},
	{name: "BlockingIOError", since: 3}, {name: "BrokenPipeError", since: 3},
	{name: "BufferError"}, {name: "BytesWarning"}, {name: "ChildProcessError", since: 3},
	{name: "ConnectionAbortedError", since: 3}, {name: "ConnectionError", since: 3},
	{name: "ConnectionRefusedError", since: 3}, {name: "ConnectionResetError", since: 3},
	{name: "DeprecationWarning"}, {name: "EOFError"}, {name: "EncodingWarning", since: 10},
	{name: "EnvironmentError"}, {name: "Exception"}, {name: "ExceptionGroup", since: 11},
	{name: "FileExistsError", since: 3}, {name: "FileNotFoundError", since: 3},
	{name: "FloatingPointError"}, {name: "FutureWarning"}, {name: "GeneratorExit"},
	{name: "IOError"}, {name: "ImportError"}, {name: "ImportWarning"},
	{name: "IndentationError"}, {name: "IndexError"}, {name: "InterruptedError", since: 3},
	{name: "IsADirectoryError", since: 3}, {name: "KeyError"}, {name: "KeyboardInterrupt"},
	{name: "LookupError"}, {name: "MemoryError"}, {name: "ModuleNotFoundError", since: 6},
	{name: "NameError"}, {name: "NotADirectoryError", since: 3}, {name: "NotImplementedError"},
	{name: "OSError"}, {name: "OverflowError"}, {name: "PendingDeprecationWarning"},
	{name: "PermissionError", since: 3}, {name: "ProcessLookupError", since: 3},
	{name: "PythonFinalizationError", since: 13}, {name: "RecursionError", since: 5},
	{name: "ReferenceError"}, {name: "ResourceWarning", since: 2}, {name: "RuntimeError"},
	{name: "RuntimeWarning"}, {name: "StopAsyncIteration", since: 5}, {name: "StopIteration"},
	{name: "SyntaxError"}, {name: "SyntaxWarning"}, {name: "SystemError"}, {name: "SystemExit"},
	{name: "TabError"}, {name: "TimeoutError", since: 3}, {name: "TypeError"},
	{name: "UnboundLocalError"}, {name: "UnicodeDecodeError"}, {name: "UnicodeEncodeError"},
	{name: "UnicodeError"}, {name: "UnicodeTranslateError"}, {name: "UnicodeWarning"},
	{name: "UserWarning"}, {name: "ValueError"}, {name: "Warning"}, {name: "ZeroDivisionError"},

	{name: "bool"}, {name: "bytearray"}, {name: "bytes"}, {name: "classmethod"},
	{name: "complex"}, {name: "dict"}, {name: "enumerate"}, {name: "filter"},
	{name: "float"}, {name: "frozenset"}, {name: "int"}, {name: "list"}, {name: "map"},
	{name: "memoryview"}, {name: "object"}, {name: "property"}, {name: "range"},
	{name: "reversed"}, {name: "set"}, {name: "slice"}, {name: "staticmethod"},
	{name: "str"}, {name: "super"}, {name: "tuple"}, {name: "type"}, {name: "zip"},
}

type literalSet map[string]struct{}

// literalsFor returns the names known to the newest Python version among
// hints. Without usable hints every name is included.
func literalsFor(hints []string) literalSet {
	newest := -1

	for _, h := range hints {
		if minor, ok := parseVersion(h); ok && minor > newest {
			newest = minor
		}
	}

	set := make(literalSet, len(literals))

	for _, l := range literals {
		if newest >= 0 && l.since > newest {
			continue
		}

		set[l.name] = struct{}{}
	}

	return set
}

func (s literalSet) has(name string) bool {
	if isInteger(name) {
		return true
	}

	_, ok := s[name]

	return ok
}

func isInteger(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// parseVersion reads a black target version such as "py38" or "PY311" and
// returns its minor version.
func parseVersion(v string) (int, bool) {
	v = strings.ToLower(strings.TrimSpace(v))

	digits, ok := strings.CutPrefix(v, "py3")
	if !ok || digits == "" {
		return 0, false
	}

	minor, err := strconv.Atoi(digits)
	if err != nil || minor < 0 {
		return 0, false
	}

	return minor, true
}
