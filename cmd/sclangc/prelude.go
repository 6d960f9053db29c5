package main

// defaultPrelude is emitted verbatim before the first declaration when the
// caller does not pass --prelude (spec.md §6: "a fixed string provided by
// the caller"). The spec treats the prelude's literal content as an
// external collaborator the core never owns; this is just the minimal
// scaffolding the target language needs to make sense of the fixed-width
// type names the emitter writes (i8/i16/.../u64/f32/f64), not a stand-in
// for a real runtime.
const defaultPrelude = `// sclangc prelude
#include <stdint.h>
#include <stddef.h>

typedef int8_t   i8;
typedef int16_t  i16;
typedef int32_t  i32;
typedef int64_t  i64;
typedef uint8_t  u8;
typedef uint16_t u16;
typedef uint32_t u32;
typedef uint64_t u64;
typedef float    f32;
typedef double   f64;

`
