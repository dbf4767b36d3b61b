package model

// PatternTag 标识提交代码中检测到的一种语法结构
type PatternTag string

const (
	PatternListComprehension  PatternTag = "list_comprehension"
	PatternDictComprehension  PatternTag = "dict_comprehension"
	PatternSetComprehension   PatternTag = "set_comprehension"
	PatternGeneratorExpr      PatternTag = "generator_expression"
	PatternForLoop            PatternTag = "for_loop"
	PatternWhileLoop          PatternTag = "while_loop"
	PatternClassDefinition    PatternTag = "class_definition"
	PatternFunctionDefinition PatternTag = "function_definition"
	PatternPropertyDecorator  PatternTag = "property_decorator"
	PatternTryExcept          PatternTag = "try_except"
	PatternWithStatement      PatternTag = "with_statement"
	PatternLambda             PatternTag = "lambda"
)
