package calltimer

import (
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/patrickmn/go-cache"
)

// Every Time* call resolves its label through FuncForPC and shortName, so the
// result is kept per entry PC. Symbols never go stale for the life of the process.
var names = cache.New(cache.NoExpiration, 0)

// FuncName returns the name of the function fn points at, without its import
// path or package. It is the compiler's symbol rather than the call site's
// spelling, so closures come out as "Outer.func1". Anything that is not a
// non-nil func gives "".
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}

	return nameForPC(v.Pointer())
}

func nameForPC(pc uintptr) string {
	key := strconv.FormatUint(uint64(pc), 16)
	if name, found := names.Get(key); found {
		return name.(string)
	}

	f := runtime.FuncForPC(pc)
	if f == nil {
		return ""
	}

	name := shortName(f.Name())
	names.SetDefault(key, name)

	return name
}

// shortName turns "github.com/x/pkg.(*T).M-fm" into "(*T).M".
func shortName(symbol string) string {
	if i := strings.LastIndex(symbol, "/"); i >= 0 {
		symbol = symbol[i+1:]
	}

	if i := strings.Index(symbol, "."); i >= 0 {
		symbol = symbol[i+1:]
	}

	symbol = strings.TrimSuffix(symbol, "-fm")

	// Drop type arguments, "[...]" or otherwise.
	for {
		open := strings.Index(symbol, "[")
		if open < 0 {
			return symbol
		}

		end := strings.Index(symbol[open:], "]")
		if end < 0 {
			return symbol
		}

		symbol = symbol[:open] + symbol[open+end+1:]
	}
}
