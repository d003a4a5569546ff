package account

// PasswordAlphabet exposes passwordAlphabet to the external test package.
const PasswordAlphabet = passwordAlphabet
