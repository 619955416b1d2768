package sema

// Diagnostic texts. Each is a format string for diag.Engine.
const (
	msgFuncRedeclared     = "Function '%s' already declared"
	msgFuncIsBuiltin      = "Function '%s' conflicts with a built-in function"
	msgParamRedeclared    = "Parameter '%s' already declared"
	msgMayNotReturn       = "Function '%s' may not return a value"
	msgVarRedeclared      = "Variable '%s' already declared in this scope"
	msgInitMismatch       = "Type mismatch in initialization of '%s', expected %s but got %s"
	msgUndefinedVar       = "Undefined variable '%s'"
	msgAssignConst        = "Cannot assign to constant '%s'"
	msgAssignMismatch     = "Type mismatch in assignment to '%s', expected %s but got %s"
	msgCondNotBool        = "Condition expression must be boolean"
	msgReturnOutside      = "Return statement outside function"
	msgReturnMismatch     = "Return type mismatch, expected %s but got %s"
	msgReturnMissingValue = "Function must return a value of type %s"
	msgBinaryMismatch     = "Type mismatch in binary operation '%s', left: %s, right: %s"
	msgBinaryInvalid      = "Invalid operation '%s' for type %s"
	msgUnaryInvalid       = "Invalid unary operation '%s' for type %s"
	msgMaybeUninit        = "Variable '%s' may be uninitialized"
	msgFuncAsValue        = "Function '%s' cannot be used as a value"
	msgLengthArity        = "Function 'length' expects 1 argument"
	msgLengthArg          = "Function 'length' expects a sequence argument"
	msgGetArity           = "Array indexing requires array and index"
	msgGetNotSeq          = "Cannot index non-sequence type"
	msgGetIndex           = "Array index must be an integer"
	msgHigherArity        = "Function '%s' expects 2 arguments"
	msgHigherSeq          = "Function '%s' expects a sequence as its first argument"
	msgHigherFuncName     = "Function '%s' expects a function name as its second argument"
	msgHigherFuncArity    = "Function '%s' passed to '%s' must take exactly one parameter"
	msgInputArity         = "Function 'input' expects 0 or 1 argument"
	msgInputPrompt        = "Function 'input' expects a string literal prompt"
	msgUndefinedFunc      = "Undefined function '%s'"
	msgNotAFunction       = "'%s' is not a function"
	msgCallArity          = "Function '%s' expects %d arguments but got %d"
	msgCallArgMismatch    = "Type mismatch in argument %d of '%s', expected %s but got %s"
	msgSeqInconsistent    = "Inconsistent types in sequence"
	msgNoMain             = "Program should have a 'main' function with signature: func main() -> int"
)
