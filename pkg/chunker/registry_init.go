package chunker

// init pre-registers a few friendly tokenizer aliases with the global
// registry, the way textsplitters.registry_init.go pre-registers the
// "recursive" and "markdown" splitter factories.
func init() {
	registry := GetRegistry()
	registry.RegisterAlias("default", DefaultEncodingModel)
	registry.RegisterAlias("gpt-4o", "gpt-4o")
	registry.RegisterAlias("gpt-4-turbo", "gpt-4")
}
