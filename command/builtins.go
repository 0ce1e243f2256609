package command

import "github.com/helena-lang/helena/engine"

// RegisterBuiltins wires every built-in command into scope, matching
// spec.md §4.8's control-flow/conditional/loop primitives, the callable
// kinds of §4.7, and the number/string/list ensembles of §4.9. It is
// called once, by scope.NewRootScope, to populate a fresh root scope.
func RegisterBuiltins(scope engine.Scope) {
	builtins := []struct {
		name string
		fn   Func
	}{
		{"idem", idem},
		{"set", setCmd},
		{"return", returnCmd},
		{"tailcall", tailcallCmd},
		{"yield", yieldCmd},
		{"error", errorCmd},
		{"break", breakCmd},
		{"continue", continueCmd},
		{"eval", evalCmd},
		{"help", helpCmd},
		{"pass", passCmd},
		{"catch", catchCmd},
		{"if", ifCmd},
		{"when", whenCmd},
		{"while", whileCmd},
		{"foreach", foreachCmd},
		{"macro", macroCmd},
		{"closure", closureCmd},
		{"proc", procCmd},
		{"coroutine", coroutineCmd},
		{"alias", aliasCmd},
		{"namespace", namespaceCmd},
		{"ensemble", ensembleCmd},
		{"scope", scopeCmd},
		{"+", addCmd},
		{"-", subCmd},
		{"*", mulCmd},
		{"/", divCmd},
		{"==", eqCmd},
		{"!=", neCmd},
		{">", gtCmd},
		{">=", geCmd},
		{"<", ltCmd},
		{"<=", leCmd},
		{"abs", absCmd},
		{"string", stringEnsembleCmd},
		{"list", listEnsembleCmd},
	}
	for _, b := range builtins {
		scope.RegisterCommand(b.name, b.fn)
	}
}
